// server/internal/store/memory.go
package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"global-track-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is a mutex-guarded Store used by tests and local runs
// without a MongoDB replica set. The single lock makes every operation,
// including the multi-document ones, atomic with respect to readers.
type MemoryStore struct {
	mu        sync.RWMutex
	shipments map[primitive.ObjectID]models.Shipment
	proofs    map[primitive.ObjectID]models.PaymentProof
	stamps    map[primitive.ObjectID]models.PDFStamp
	settings  *models.SiteSettings
	users     map[primitive.ObjectID]models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		shipments: make(map[primitive.ObjectID]models.Shipment),
		proofs:    make(map[primitive.ObjectID]models.PaymentProof),
		stamps:    make(map[primitive.ObjectID]models.PDFStamp),
		users:     make(map[primitive.ObjectID]models.User),
	}
}

func (m *MemoryStore) InsertShipment(ctx context.Context, s *models.Shipment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.shipments {
		if existing.TrackingNumber == s.TrackingNumber {
			return ErrDuplicateTracking
		}
	}
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	m.shipments[s.ID] = *s
	return nil
}

func (m *MemoryStore) GetShipment(ctx context.Context, id primitive.ObjectID) (models.Shipment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.shipments[id]
	if !ok {
		return models.Shipment{}, ErrNotFound
	}
	return s, nil
}

func (m *MemoryStore) GetShipmentByTracking(ctx context.Context, trackingNumber string) (models.Shipment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.shipments {
		if s.TrackingNumber == trackingNumber {
			return s, nil
		}
	}
	return models.Shipment{}, ErrNotFound
}

func (m *MemoryStore) UpdateShipment(ctx context.Context, s *models.Shipment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.shipments[s.ID]; !ok {
		return ErrNotFound
	}
	m.shipments[s.ID] = *s
	return nil
}

func (m *MemoryStore) DeleteShipment(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.shipments[id]; !ok {
		return ErrNotFound
	}
	delete(m.shipments, id)
	for pid, p := range m.proofs {
		if p.ShipmentID == id {
			delete(m.proofs, pid)
		}
	}
	return nil
}

func (m *MemoryStore) ListShipments(ctx context.Context, f ShipmentFilter) ([]models.Shipment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []models.Shipment{}
	for _, s := range m.shipments {
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		if f.PaymentStatus != "" && s.PaymentStatus != f.PaymentStatus {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(s.TrackingNumber), q) &&
				!strings.Contains(strings.ToLower(s.SenderName), q) &&
				!strings.Contains(strings.ToLower(s.ReceiverName), q) {
				continue
			}
		}
		result = append(result, s)
	}
	return result, nil
}

func (m *MemoryStore) UpsertProof(ctx context.Context, p *models.PaymentProof) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, existing := range m.proofs {
		if existing.ShipmentID == p.ShipmentID {
			p.ID = id
			m.proofs[id] = *p
			return nil
		}
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.proofs[p.ID] = *p
	return nil
}

func (m *MemoryStore) GetProof(ctx context.Context, id primitive.ObjectID) (models.PaymentProof, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.proofs[id]
	if !ok {
		return models.PaymentProof{}, ErrNotFound
	}
	return p, nil
}

func (m *MemoryStore) GetProofByShipment(ctx context.Context, shipmentID primitive.ObjectID) (models.PaymentProof, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.proofs {
		if p.ShipmentID == shipmentID {
			return p, nil
		}
	}
	return models.PaymentProof{}, ErrNotFound
}

func (m *MemoryStore) DeleteProof(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.proofs[id]; !ok {
		return ErrNotFound
	}
	delete(m.proofs, id)
	return nil
}

func (m *MemoryStore) ListProofs(ctx context.Context, verified bool) ([]models.PaymentProof, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []models.PaymentProof{}
	for _, p := range m.proofs {
		if p.IsVerified == verified {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *MemoryStore) VerifyProof(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.proofs[id]
	if !ok {
		return ErrNotFound
	}
	s, ok := m.shipments[p.ShipmentID]
	if !ok {
		return ErrNotFound
	}
	p.IsVerified = true
	s.PaymentStatus = models.PaymentPaid
	s.LastUpdated = time.Now()
	m.proofs[id] = p
	m.shipments[s.ID] = s
	return nil
}

func (m *MemoryStore) InsertStamp(ctx context.Context, st *models.PDFStamp) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st.ID.IsZero() {
		st.ID = primitive.NewObjectID()
	}
	m.stamps[st.ID] = *st
	return nil
}

func (m *MemoryStore) GetStamp(ctx context.Context, id primitive.ObjectID) (models.PDFStamp, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.stamps[id]
	if !ok {
		return models.PDFStamp{}, ErrNotFound
	}
	return st, nil
}

func (m *MemoryStore) UpdateStamp(ctx context.Context, st *models.PDFStamp) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stamps[st.ID]; !ok {
		return ErrNotFound
	}
	m.stamps[st.ID] = *st
	return nil
}

func (m *MemoryStore) DeleteStamp(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stamps[id]; !ok {
		return ErrNotFound
	}
	delete(m.stamps, id)
	return nil
}

func (m *MemoryStore) ListStamps(ctx context.Context) ([]models.PDFStamp, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []models.PDFStamp{}
	for _, st := range m.stamps {
		result = append(result, st)
	}
	return result, nil
}

func (m *MemoryStore) GetActiveStamp(ctx context.Context) (models.PDFStamp, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, st := range m.stamps {
		if st.IsActive {
			return st, nil
		}
	}
	return models.PDFStamp{}, ErrNotFound
}

func (m *MemoryStore) ActivateStamp(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	target, ok := m.stamps[id]
	if !ok {
		return ErrNotFound
	}
	for sid, st := range m.stamps {
		if st.IsActive {
			st.IsActive = false
			m.stamps[sid] = st
		}
	}
	target.IsActive = true
	target.UpdatedAt = time.Now()
	m.stamps[id] = target
	return nil
}

func (m *MemoryStore) LoadSettings(ctx context.Context) (models.SiteSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings == nil {
		s := models.DefaultSiteSettings()
		s.ID = primitive.NewObjectID()
		m.settings = &s
	}
	return *m.settings, nil
}

func (m *MemoryStore) SaveSettings(ctx context.Context, s *models.SiteSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings == nil || m.settings.ID != s.ID {
		return ErrNotFound
	}
	copied := *s
	m.settings = &copied
	return nil
}

func (m *MemoryStore) Stats(ctx context.Context, weekAgo time.Time) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := Stats{
		StatusCounts:        map[models.ShipmentStatus]int64{},
		PaymentStatusCounts: map[models.PaymentStatus]int64{},
	}
	for _, s := range m.shipments {
		stats.TotalShipments++
		stats.StatusCounts[s.Status]++
		stats.PaymentStatusCounts[s.PaymentStatus]++
		if s.Status == models.StatusDelivered {
			stats.DeliveredShipments++
		}
		if !s.DateCreated.Before(weekAgo) {
			stats.WeeklyShipments++
		}
		if s.PaymentStatus == models.PaymentPaid {
			stats.TotalRevenue = stats.TotalRevenue.Add(s.TotalCost)
			if !s.DateCreated.Before(weekAgo) {
				stats.WeeklyRevenue = stats.WeeklyRevenue.Add(s.TotalCost)
			}
		}
	}
	for _, p := range m.proofs {
		if !p.IsVerified {
			stats.PendingProofs++
		}
	}
	return stats, nil
}

func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (m *MemoryStore) InsertUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	m.users[u.ID] = *u
	return nil
}

func (m *MemoryStore) CountUsers(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.users)), nil
}
