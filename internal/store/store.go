// server/internal/store/store.go
package store

import (
	"context"
	"errors"
	"time"

	"global-track-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a shipment, proof, stamp or user does
	// not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateTracking is returned when a shipment is created with a
	// tracking number that already exists.
	ErrDuplicateTracking = errors.New("tracking number already exists")
)

// ShipmentFilter narrows ListShipments. Zero values mean "no filter".
type ShipmentFilter struct {
	Status        models.ShipmentStatus
	PaymentStatus models.PaymentStatus
	Search        string // matches tracking number, sender name or receiver name
}

// Stats is the admin dashboard aggregate.
type Stats struct {
	TotalShipments      int64                            `json:"totalShipments"`
	DeliveredShipments  int64                            `json:"deliveredShipments"`
	PendingProofs       int64                            `json:"pendingProofs"`
	TotalRevenue        models.Money                     `json:"totalRevenue"`
	WeeklyShipments     int64                            `json:"weeklyShipments"`
	WeeklyRevenue       models.Money                     `json:"weeklyRevenue"`
	StatusCounts        map[models.ShipmentStatus]int64  `json:"statusCounts"`
	PaymentStatusCounts map[models.PaymentStatus]int64   `json:"paymentStatusCounts"`
}

// Store is the persistence collaborator for the lifecycle service.
// VerifyProof, ActivateStamp and DeleteShipment are multi-document
// updates and must be all-or-nothing.
type Store interface {
	InsertShipment(ctx context.Context, s *models.Shipment) error
	GetShipment(ctx context.Context, id primitive.ObjectID) (models.Shipment, error)
	GetShipmentByTracking(ctx context.Context, trackingNumber string) (models.Shipment, error)
	UpdateShipment(ctx context.Context, s *models.Shipment) error
	DeleteShipment(ctx context.Context, id primitive.ObjectID) error
	ListShipments(ctx context.Context, f ShipmentFilter) ([]models.Shipment, error)

	UpsertProof(ctx context.Context, p *models.PaymentProof) error
	GetProof(ctx context.Context, id primitive.ObjectID) (models.PaymentProof, error)
	GetProofByShipment(ctx context.Context, shipmentID primitive.ObjectID) (models.PaymentProof, error)
	DeleteProof(ctx context.Context, id primitive.ObjectID) error
	ListProofs(ctx context.Context, verified bool) ([]models.PaymentProof, error)
	// VerifyProof marks the proof verified and the owning shipment paid in
	// one transaction.
	VerifyProof(ctx context.Context, id primitive.ObjectID) error

	InsertStamp(ctx context.Context, st *models.PDFStamp) error
	GetStamp(ctx context.Context, id primitive.ObjectID) (models.PDFStamp, error)
	UpdateStamp(ctx context.Context, st *models.PDFStamp) error
	DeleteStamp(ctx context.Context, id primitive.ObjectID) error
	ListStamps(ctx context.Context) ([]models.PDFStamp, error)
	GetActiveStamp(ctx context.Context) (models.PDFStamp, error)
	// ActivateStamp deactivates every stamp and activates the target in
	// one transaction, so two concurrent activations cannot leave two
	// stamps active.
	ActivateStamp(ctx context.Context, id primitive.ObjectID) error

	// LoadSettings returns the singleton settings record, creating it
	// with defaults on first access.
	LoadSettings(ctx context.Context) (models.SiteSettings, error)
	SaveSettings(ctx context.Context, s *models.SiteSettings) error

	Stats(ctx context.Context, weekAgo time.Time) (Stats, error)

	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	InsertUser(ctx context.Context, u *models.User) error
	CountUsers(ctx context.Context) (int64, error)
}
