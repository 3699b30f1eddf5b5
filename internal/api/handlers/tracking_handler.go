// server/internal/api/handlers/tracking_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"global-track-api-server/internal/s3"
	"global-track-api-server/internal/shipment"
	"global-track-api-server/internal/socket"
	"global-track-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TrackingHandler serves the public tracking surface. Nothing here
// requires authentication; lookups for unknown codes are a neutral empty
// result, never an error.
type TrackingHandler struct {
	Service    *shipment.Service
	S3Uploader *s3.Uploader
	Hub        *socket.Hub
}

// TrackShipment handles GET /track?tracking_number=...
func (h *TrackingHandler) TrackShipment(c *gin.Context) {
	trackingNumber := c.Query("tracking_number")
	if trackingNumber == "" {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}

	s, proof, err := h.Service.Track(c.Request.Context(), trackingNumber)
	if err == store.ErrNotFound {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{
		"found":    true,
		"shipment": s,
		"progress": shipment.Progress(s.Status),
		"timeline": shipment.Timeline(s),
		"updates":  shipment.SimulatedUpdates(s),
	}
	if proof != nil {
		response["proofUploaded"] = true
		response["proofVerified"] = proof.IsVerified
	} else {
		response["proofUploaded"] = false
	}
	c.JSON(http.StatusOK, response)
}

// UploadPaymentProof handles the one public write: a multipart "proof"
// image for a tracking number. A repeat upload replaces the prior proof.
func (h *TrackingHandler) UploadPaymentProof(c *gin.Context) {
	trackingNumber := c.Param("trackingNumber")

	file, err := c.FormFile("proof")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A proof image is required"})
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

	objectKey := fmt.Sprintf("payment-proofs/%s/%s%s", trackingNumber, uuid.New().String(), uploadExt(file))
	imageURL, err := h.S3Uploader.UploadFile(c.Request.Context(), src, objectKey, file.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload", "details": err.Error()})
		return
	}

	proof, err := h.Service.SubmitPaymentProof(c.Request.Context(), trackingNumber, imageURL)
	if err != nil {
		respondError(c, err)
		return
	}

	h.Hub.Broadcast(socket.Event{
		Type:           "proof_submitted",
		TrackingNumber: trackingNumber,
		At:             time.Now(),
	})

	c.JSON(http.StatusCreated, gin.H{"status": "success", "proof": proof})
}
