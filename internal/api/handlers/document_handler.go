// server/internal/api/handlers/document_handler.go
package handlers

import (
	"fmt"
	"net/http"

	"global-track-api-server/internal/pdf"
	"global-track-api-server/internal/shipment"
	"global-track-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

// DocumentHandler serves the printable tracking PDF.
type DocumentHandler struct {
	Service   *shipment.Service
	Generator *pdf.Generator
}

// DownloadDocument handles GET /track/:trackingNumber/document. The PDF is
// built from the current shipment snapshot, site branding and the active
// stamp; missing optional assets degrade inside the generator.
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	trackingNumber := c.Param("trackingNumber")
	ctx := c.Request.Context()

	s, err := h.Service.ShipmentByTracking(ctx, trackingNumber)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	settings, err := h.Service.Settings(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	stamp, err := h.Service.ActiveStamp(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	document, err := h.Generator.Generate(ctx, s, settings, stamp)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate document", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="tracking_%s.pdf"`, trackingNumber))
	c.Data(http.StatusOK, "application/pdf", document)
}
