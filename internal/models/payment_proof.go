// server/internal/models/payment_proof.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentProof holds the image a customer uploaded as evidence of payment.
// There is at most one per shipment; a new upload replaces the old one.
type PaymentProof struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ShipmentID     primitive.ObjectID `bson:"shipmentID" json:"shipmentID"`
	TrackingNumber string             `bson:"trackingNumber" json:"trackingNumber"`
	ImageURL       string             `bson:"imageURL" json:"imageURL"`
	IsVerified     bool               `bson:"isVerified" json:"isVerified"`
	DateUploaded   time.Time          `bson:"dateUploaded" json:"dateUploaded"`
}
