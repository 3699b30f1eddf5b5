// server/internal/models/pdf_stamp.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PDFStamp is a named stamp + signature asset pair. At most one stamp is
// active across the collection; activation is an atomic write in the store.
type PDFStamp struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	StampImageURL     string             `bson:"stampImageURL,omitempty" json:"stampImageURL"`
	SignatureImageURL string             `bson:"signatureImageURL,omitempty" json:"signatureImageURL"`
	IsActive          bool               `bson:"isActive" json:"isActive"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
