// server/internal/models/shipment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ShipmentStatus string

const (
	StatusPending    ShipmentStatus = "pending"
	StatusPicked     ShipmentStatus = "picked"
	StatusOnWay      ShipmentStatus = "on_way"
	StatusDelivered  ShipmentStatus = "delivered"
	StatusOnHold     ShipmentStatus = "on_hold"
	StatusCustomHold ShipmentStatus = "custom_hold"
)

func (s ShipmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPicked, StatusOnWay, StatusDelivered, StatusOnHold, StatusCustomHold:
		return true
	}
	return false
}

// Label returns the human-readable form used on public pages and in the
// tracking document.
func (s ShipmentStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusPicked:
		return "Picked Up"
	case StatusOnWay:
		return "On the Way"
	case StatusDelivered:
		return "Delivered"
	case StatusOnHold:
		return "On Hold"
	case StatusCustomHold:
		return "Customs Hold"
	}
	return string(s)
}

type PaymentStatus string

const (
	PaymentNotRequired PaymentStatus = "not_required"
	PaymentAwaiting    PaymentStatus = "awaiting_payment"
	PaymentPaid        PaymentStatus = "paid"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentNotRequired, PaymentAwaiting, PaymentPaid:
		return true
	}
	return false
}

func (p PaymentStatus) Label() string {
	switch p {
	case PaymentNotRequired:
		return "Not Required"
	case PaymentAwaiting:
		return "Awaiting Payment"
	case PaymentPaid:
		return "Paid"
	}
	return string(p)
}

type PaymentMethod string

const (
	MethodBank   PaymentMethod = "bank"
	MethodCrypto PaymentMethod = "crypto"
)

func (m PaymentMethod) Valid() bool {
	return m == MethodBank || m == MethodCrypto
}

func (m PaymentMethod) Label() string {
	switch m {
	case MethodBank:
		return "Bank Transfer"
	case MethodCrypto:
		return "Cryptocurrency"
	}
	return string(m)
}

// Shipment is the central document. TotalCost is derived and must equal
// ShipmentCost + ClearanceCost after every write; the lifecycle service
// recomputes it, never the caller.
type Shipment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrackingNumber string             `bson:"trackingNumber" json:"trackingNumber"`

	SenderName    string `bson:"senderName" json:"senderName"`
	SenderAddress string `bson:"senderAddress" json:"senderAddress"`
	SenderEmail   string `bson:"senderEmail" json:"senderEmail"`
	SenderPhone   string `bson:"senderPhone" json:"senderPhone"`

	ReceiverName    string `bson:"receiverName" json:"receiverName"`
	ReceiverAddress string `bson:"receiverAddress" json:"receiverAddress"`
	ReceiverEmail   string `bson:"receiverEmail" json:"receiverEmail"`
	ReceiverPhone   string `bson:"receiverPhone" json:"receiverPhone"`

	Origin          string `bson:"origin" json:"origin"`
	Destination     string `bson:"destination" json:"destination"`
	CurrentLocation string `bson:"currentLocation" json:"currentLocation"`

	Status  ShipmentStatus `bson:"status" json:"status"`
	Remarks string         `bson:"remarks,omitempty" json:"remarks"`

	ParcelDescription string  `bson:"parcelDescription,omitempty" json:"parcelDescription"`
	ParcelWeight      float64 `bson:"parcelWeight" json:"parcelWeight"` // kg
	ParcelImageURL    string  `bson:"parcelImageURL,omitempty" json:"parcelImageURL"`

	RequirePayment  bool          `bson:"requirePayment" json:"requirePayment"`
	ShowPaymentInfo bool          `bson:"showPaymentInfo" json:"showPaymentInfo"`
	PaymentMethod   PaymentMethod `bson:"paymentMethod" json:"paymentMethod"`
	ShipmentCost    Money         `bson:"shipmentCost" json:"shipmentCost"`
	ClearanceCost   Money         `bson:"clearanceCost" json:"clearanceCost"`
	TotalCost       Money         `bson:"totalCost" json:"totalCost"`
	CryptoWallet    string        `bson:"cryptoWallet,omitempty" json:"cryptoWallet"`
	PaymentStatus   PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`

	EstimatedDelivery *time.Time `bson:"estimatedDelivery,omitempty" json:"estimatedDelivery,omitempty"`
	DateCreated       time.Time  `bson:"dateCreated" json:"dateCreated"`
	LastUpdated       time.Time  `bson:"lastUpdated" json:"lastUpdated"`
}
