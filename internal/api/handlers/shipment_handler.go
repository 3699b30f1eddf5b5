// server/internal/api/handlers/shipment_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"global-track-api-server/internal/models"
	"global-track-api-server/internal/s3"
	"global-track-api-server/internal/shipment"
	"global-track-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ShipmentHandler is the admin CRUD surface for shipments.
type ShipmentHandler struct {
	Service    *shipment.Service
	S3Uploader *s3.Uploader
}

type ShipmentRequest struct {
	TrackingNumber string `json:"trackingNumber"`

	SenderName    string `json:"senderName" binding:"required"`
	SenderAddress string `json:"senderAddress"`
	SenderEmail   string `json:"senderEmail"`
	SenderPhone   string `json:"senderPhone"`

	ReceiverName    string `json:"receiverName" binding:"required"`
	ReceiverAddress string `json:"receiverAddress"`
	ReceiverEmail   string `json:"receiverEmail"`
	ReceiverPhone   string `json:"receiverPhone"`

	Origin          string `json:"origin" binding:"required"`
	Destination     string `json:"destination" binding:"required"`
	CurrentLocation string `json:"currentLocation"`

	Status  models.ShipmentStatus `json:"status"`
	Remarks string                `json:"remarks"`

	ParcelDescription string  `json:"parcelDescription"`
	ParcelWeight      float64 `json:"parcelWeight" binding:"required,gt=0"`
	ParcelImageURL    string  `json:"parcelImageURL"`

	RequirePayment  bool                 `json:"requirePayment"`
	ShowPaymentInfo bool                 `json:"showPaymentInfo"`
	PaymentMethod   models.PaymentMethod `json:"paymentMethod"`
	ShipmentCost    models.Money         `json:"shipmentCost"`
	ClearanceCost   models.Money         `json:"clearanceCost"`
	CryptoWallet    string               `json:"cryptoWallet"`
	PaymentStatus   models.PaymentStatus `json:"paymentStatus"`

	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
}

func (r *ShipmentRequest) toModel() models.Shipment {
	return models.Shipment{
		TrackingNumber:    r.TrackingNumber,
		SenderName:        r.SenderName,
		SenderAddress:     r.SenderAddress,
		SenderEmail:       r.SenderEmail,
		SenderPhone:       r.SenderPhone,
		ReceiverName:      r.ReceiverName,
		ReceiverAddress:   r.ReceiverAddress,
		ReceiverEmail:     r.ReceiverEmail,
		ReceiverPhone:     r.ReceiverPhone,
		Origin:            r.Origin,
		Destination:       r.Destination,
		CurrentLocation:   r.CurrentLocation,
		Status:            r.Status,
		Remarks:           r.Remarks,
		ParcelDescription: r.ParcelDescription,
		ParcelWeight:      r.ParcelWeight,
		ParcelImageURL:    r.ParcelImageURL,
		RequirePayment:    r.RequirePayment,
		ShowPaymentInfo:   r.ShowPaymentInfo,
		PaymentMethod:     r.PaymentMethod,
		ShipmentCost:      r.ShipmentCost,
		ClearanceCost:     r.ClearanceCost,
		CryptoWallet:      r.CryptoWallet,
		PaymentStatus:     r.PaymentStatus,
		EstimatedDelivery: r.EstimatedDelivery,
	}
}

func (h *ShipmentHandler) CreateShipment(c *gin.Context) {
	var req ShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := req.toModel()
	if err := h.Service.CreateShipment(c.Request.Context(), &s); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *ShipmentHandler) GetShipment(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	s, err := h.Service.GetShipment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// ListShipments supports ?status=, ?payment_status= and ?search= the way
// the dashboard filter bar sends them.
func (h *ShipmentHandler) ListShipments(c *gin.Context) {
	filter := store.ShipmentFilter{
		Status:        models.ShipmentStatus(c.Query("status")),
		PaymentStatus: models.PaymentStatus(c.Query("payment_status")),
		Search:        c.Query("search"),
	}
	shipments, err := h.Service.ListShipments(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipments)
}

func (h *ShipmentHandler) UpdateShipment(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req ShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := req.toModel()
	if err := h.Service.UpdateShipment(c.Request.Context(), id, &s); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *ShipmentHandler) DeleteShipment(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteShipment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Shipment deleted"})
}

// UploadParcelImage attaches a parcel photo to an existing shipment.
func (h *ShipmentHandler) UploadParcelImage(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	s, err := h.Service.GetShipment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An image is required"})
		return
	}
	if !checkImageUpload(c, file) {
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload", "details": err.Error()})
		return
	}
	defer src.Close()

	objectKey := fmt.Sprintf("parcels/%s/%s%s", s.TrackingNumber, uuid.New().String(), uploadExt(file))
	imageURL, err := h.S3Uploader.UploadFile(c.Request.Context(), src, objectKey, file.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload", "details": err.Error()})
		return
	}

	s.ParcelImageURL = imageURL
	if err := h.Service.UpdateShipment(c.Request.Context(), id, &s); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "parcelImageURL": imageURL})
}
