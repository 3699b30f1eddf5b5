package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User struct matches the document in MongoDB.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name" json:"name"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"` // "admin" or "superadmin"
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
