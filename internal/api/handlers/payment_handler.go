// server/internal/api/handlers/payment_handler.go
package handlers

import (
	"net/http"
	"time"

	"global-track-api-server/internal/shipment"
	"global-track-api-server/internal/socket"

	"github.com/gin-gonic/gin"
)

// PaymentHandler is the admin review surface for uploaded payment proofs.
type PaymentHandler struct {
	Service *shipment.Service
	Hub     *socket.Hub
}

// ListPayments returns proofs awaiting review plus recently verified ones.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	pending, err := h.Service.ListProofs(c.Request.Context(), false)
	if err != nil {
		respondError(c, err)
		return
	}
	verified, err := h.Service.ListProofs(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending, "verified": verified})
}

// VerifyPayment marks a proof verified and its shipment paid in one step.
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.Service.VerifyPayment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	h.Hub.Broadcast(socket.Event{Type: "payment_verified", At: time.Now()})
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Payment verified"})
}

// RejectPayment deletes a proof. The shipment's payment status is left as
// it was; the customer can upload a new proof against the same shipment.
func (h *PaymentHandler) RejectPayment(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	proof, err := h.Service.RejectPayment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Payment proof for " + proof.TrackingNumber + " rejected and removed",
	})
}
