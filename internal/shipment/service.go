// server/internal/shipment/service.go
package shipment

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"global-track-api-server/internal/models"
	"global-track-api-server/internal/store"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ValidationError reports a rejected field on create or update.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Service is the shipment lifecycle manager. It owns the shipment and
// payment-proof state machines and their invariants; handlers never write
// to the store directly.
type Service struct {
	store  store.Store
	logger *zap.Logger

	// settingsCache holds the singleton settings for the process lifetime,
	// invalidated on every write.
	settingsMu    sync.RWMutex
	settingsCache *models.SiteSettings
}

func NewService(st store.Store, logger *zap.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// NewTrackingNumber generates a public tracking code for shipments created
// without one.
func NewTrackingNumber() string {
	return "GT-" + strings.ToUpper(uuid.New().String()[:8])
}

func validateShipment(s *models.Shipment) error {
	switch {
	case strings.TrimSpace(s.SenderName) == "":
		return &ValidationError{Field: "senderName", Message: "is required"}
	case strings.TrimSpace(s.ReceiverName) == "":
		return &ValidationError{Field: "receiverName", Message: "is required"}
	case strings.TrimSpace(s.Origin) == "":
		return &ValidationError{Field: "origin", Message: "is required"}
	case strings.TrimSpace(s.Destination) == "":
		return &ValidationError{Field: "destination", Message: "is required"}
	}
	if s.ParcelWeight <= 0 {
		return &ValidationError{Field: "parcelWeight", Message: "must be positive"}
	}
	if !s.Status.Valid() {
		return &ValidationError{Field: "status", Message: "unknown status"}
	}
	if s.PaymentStatus != "" && !s.PaymentStatus.Valid() {
		return &ValidationError{Field: "paymentStatus", Message: "unknown payment status"}
	}
	if s.PaymentMethod != "" && !s.PaymentMethod.Valid() {
		return &ValidationError{Field: "paymentMethod", Message: "unknown payment method"}
	}
	if s.ShipmentCost.IsNegative() {
		return &ValidationError{Field: "shipmentCost", Message: "must not be negative"}
	}
	if s.ClearanceCost.IsNegative() {
		return &ValidationError{Field: "clearanceCost", Message: "must not be negative"}
	}
	return nil
}

// CreateShipment validates and stores a new shipment. TotalCost is
// recomputed here, timestamps are set, and paymentStatus is derived from
// requirePayment when the caller left it unset.
func (svc *Service) CreateShipment(ctx context.Context, s *models.Shipment) error {
	if strings.TrimSpace(s.TrackingNumber) == "" {
		s.TrackingNumber = NewTrackingNumber()
	}
	if s.Status == "" {
		s.Status = models.StatusPending
	}
	if s.PaymentStatus == "" {
		if s.RequirePayment {
			s.PaymentStatus = models.PaymentAwaiting
		} else {
			s.PaymentStatus = models.PaymentNotRequired
		}
	}
	if err := validateShipment(s); err != nil {
		return err
	}

	s.TotalCost = s.ShipmentCost.Add(s.ClearanceCost)
	now := time.Now()
	s.DateCreated = now
	s.LastUpdated = now

	if err := svc.store.InsertShipment(ctx, s); err != nil {
		return err
	}
	svc.logger.Info("shipment created",
		zap.String("trackingNumber", s.TrackingNumber),
		zap.String("status", string(s.Status)))
	return nil
}

// UpdateShipment replaces the mutable fields of an existing shipment.
// Identity and creation time are kept from the stored document and
// TotalCost is recomputed from the incoming cost fields.
func (svc *Service) UpdateShipment(ctx context.Context, id primitive.ObjectID, s *models.Shipment) error {
	existing, err := svc.store.GetShipment(ctx, id)
	if err != nil {
		return err
	}

	s.ID = existing.ID
	s.TrackingNumber = existing.TrackingNumber
	s.DateCreated = existing.DateCreated
	if s.PaymentStatus == "" {
		s.PaymentStatus = existing.PaymentStatus
	}
	if err := validateShipment(s); err != nil {
		return err
	}

	s.TotalCost = s.ShipmentCost.Add(s.ClearanceCost)
	s.LastUpdated = time.Now()
	return svc.store.UpdateShipment(ctx, s)
}

// DeleteShipment hard-deletes the shipment and its payment proof.
func (svc *Service) DeleteShipment(ctx context.Context, id primitive.ObjectID) error {
	return svc.store.DeleteShipment(ctx, id)
}

func (svc *Service) GetShipment(ctx context.Context, id primitive.ObjectID) (models.Shipment, error) {
	return svc.store.GetShipment(ctx, id)
}

func (svc *Service) ListShipments(ctx context.Context, f store.ShipmentFilter) ([]models.Shipment, error) {
	return svc.store.ListShipments(ctx, f)
}

func (svc *Service) ShipmentByTracking(ctx context.Context, trackingNumber string) (models.Shipment, error) {
	return svc.store.GetShipmentByTracking(ctx, trackingNumber)
}

// Track returns the public snapshot for a tracking number plus the proof
// on file, if any. The proof may be nil.
func (svc *Service) Track(ctx context.Context, trackingNumber string) (models.Shipment, *models.PaymentProof, error) {
	s, err := svc.store.GetShipmentByTracking(ctx, trackingNumber)
	if err != nil {
		return models.Shipment{}, nil, err
	}
	proof, err := svc.store.GetProofByShipment(ctx, s.ID)
	if err == store.ErrNotFound {
		return s, nil, nil
	}
	if err != nil {
		return models.Shipment{}, nil, err
	}
	return s, &proof, nil
}

// SubmitPaymentProof upserts the single proof for the shipment and moves
// its payment status to awaiting_payment. A repeat upload replaces the
// image and resets verification.
func (svc *Service) SubmitPaymentProof(ctx context.Context, trackingNumber, imageURL string) (models.PaymentProof, error) {
	s, err := svc.store.GetShipmentByTracking(ctx, trackingNumber)
	if err != nil {
		return models.PaymentProof{}, err
	}

	proof := models.PaymentProof{
		ShipmentID:     s.ID,
		TrackingNumber: s.TrackingNumber,
		ImageURL:       imageURL,
		IsVerified:     false,
		DateUploaded:   time.Now(),
	}
	if err := svc.store.UpsertProof(ctx, &proof); err != nil {
		return models.PaymentProof{}, err
	}

	s.PaymentStatus = models.PaymentAwaiting
	s.LastUpdated = time.Now()
	if err := svc.store.UpdateShipment(ctx, &s); err != nil {
		return models.PaymentProof{}, err
	}

	svc.logger.Info("payment proof submitted", zap.String("trackingNumber", trackingNumber))
	return proof, nil
}

// VerifyPayment marks the proof verified and the shipment paid. Both
// writes happen in one store transaction.
func (svc *Service) VerifyPayment(ctx context.Context, proofID primitive.ObjectID) error {
	if err := svc.store.VerifyProof(ctx, proofID); err != nil {
		return err
	}
	svc.logger.Info("payment verified", zap.String("proofID", proofID.Hex()))
	return nil
}

// RejectPayment deletes the proof. The shipment's payment status is
// deliberately left untouched; see the admin docs on re-uploads.
func (svc *Service) RejectPayment(ctx context.Context, proofID primitive.ObjectID) (models.PaymentProof, error) {
	proof, err := svc.store.GetProof(ctx, proofID)
	if err != nil {
		return models.PaymentProof{}, err
	}
	if err := svc.store.DeleteProof(ctx, proofID); err != nil {
		return models.PaymentProof{}, err
	}
	svc.logger.Info("payment proof rejected", zap.String("trackingNumber", proof.TrackingNumber))
	return proof, nil
}

func (svc *Service) ListProofs(ctx context.Context, verified bool) ([]models.PaymentProof, error) {
	return svc.store.ListProofs(ctx, verified)
}

// --- Stamps ---

// CreateStamp stores a stamp; when the caller asked for it to be active,
// activation runs through the exclusive path so other stamps drop out.
func (svc *Service) CreateStamp(ctx context.Context, st *models.PDFStamp) error {
	if strings.TrimSpace(st.Name) == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	wantActive := st.IsActive
	st.IsActive = false
	now := time.Now()
	st.CreatedAt = now
	st.UpdatedAt = now
	if err := svc.store.InsertStamp(ctx, st); err != nil {
		return err
	}
	if wantActive {
		if err := svc.store.ActivateStamp(ctx, st.ID); err != nil {
			return err
		}
		st.IsActive = true
	}
	return nil
}

func (svc *Service) UpdateStamp(ctx context.Context, id primitive.ObjectID, st *models.PDFStamp) error {
	existing, err := svc.store.GetStamp(ctx, id)
	if err != nil {
		return err
	}
	if strings.TrimSpace(st.Name) == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	wantActive := st.IsActive
	st.ID = existing.ID
	st.CreatedAt = existing.CreatedAt
	st.IsActive = existing.IsActive
	st.UpdatedAt = time.Now()
	if err := svc.store.UpdateStamp(ctx, st); err != nil {
		return err
	}
	if wantActive && !existing.IsActive {
		if err := svc.store.ActivateStamp(ctx, id); err != nil {
			return err
		}
		st.IsActive = true
	}
	return nil
}

func (svc *Service) DeleteStamp(ctx context.Context, id primitive.ObjectID) error {
	return svc.store.DeleteStamp(ctx, id)
}

func (svc *Service) ListStamps(ctx context.Context) ([]models.PDFStamp, error) {
	return svc.store.ListStamps(ctx)
}

// ActivateStamp makes the target the single active stamp.
func (svc *Service) ActivateStamp(ctx context.Context, id primitive.ObjectID) error {
	return svc.store.ActivateStamp(ctx, id)
}

// ActiveStamp returns the currently active stamp, or nil when none is set.
func (svc *Service) ActiveStamp(ctx context.Context) (*models.PDFStamp, error) {
	st, err := svc.store.GetActiveStamp(ctx)
	if err == store.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// --- Site settings ---

// Settings returns the singleton settings record, cached for the process
// lifetime.
func (svc *Service) Settings(ctx context.Context) (models.SiteSettings, error) {
	svc.settingsMu.RLock()
	cached := svc.settingsCache
	svc.settingsMu.RUnlock()
	if cached != nil {
		return *cached, nil
	}

	s, err := svc.store.LoadSettings(ctx)
	if err != nil {
		return models.SiteSettings{}, err
	}
	svc.settingsMu.Lock()
	svc.settingsCache = &s
	svc.settingsMu.Unlock()
	return s, nil
}

// UpdateSettings writes the singleton record and invalidates the cache.
func (svc *Service) UpdateSettings(ctx context.Context, s *models.SiteSettings) error {
	current, err := svc.Settings(ctx)
	if err != nil {
		return err
	}
	s.ID = current.ID
	s.UpdatedAt = time.Now()
	if err := svc.store.SaveSettings(ctx, s); err != nil {
		return err
	}
	svc.settingsMu.Lock()
	copied := *s
	svc.settingsCache = &copied
	svc.settingsMu.Unlock()
	return nil
}

// Stats returns the admin dashboard aggregate over the last seven days.
func (svc *Service) Stats(ctx context.Context) (store.Stats, error) {
	return svc.store.Stats(ctx, time.Now().AddDate(0, 0, -7))
}
