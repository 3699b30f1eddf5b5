// server/internal/api/handlers/stamp_handler.go
package handlers

import (
	"fmt"
	"net/http"

	"global-track-api-server/internal/models"
	"global-track-api-server/internal/s3"
	"global-track-api-server/internal/shipment"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StampHandler manages the stamp/signature asset pairs embedded in
// generated documents. Create and update take multipart forms so image
// files ride along with the fields.
type StampHandler struct {
	Service    *shipment.Service
	S3Uploader *s3.Uploader
}

func (h *StampHandler) uploadStampAsset(c *gin.Context, field, kind string) (string, bool) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", true // optional
	}
	if !checkImageUpload(c, file) {
		return "", false
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload", "details": err.Error()})
		return "", false
	}
	defer src.Close()

	objectKey := fmt.Sprintf("stamps/%s/%s%s", kind, uuid.New().String(), uploadExt(file))
	url, err := h.S3Uploader.UploadFile(c.Request.Context(), src, objectKey, file.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload", "details": err.Error()})
		return "", false
	}
	return url, true
}

func (h *StampHandler) ListStamps(c *gin.Context) {
	stamps, err := h.Service.ListStamps(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stamps)
}

func (h *StampHandler) CreateStamp(c *gin.Context) {
	stamp := models.PDFStamp{
		Name:     c.PostForm("name"),
		IsActive: c.PostForm("is_active") == "true",
	}

	var ok bool
	if stamp.StampImageURL, ok = h.uploadStampAsset(c, "stamp_image", "stamp"); !ok {
		return
	}
	if stamp.SignatureImageURL, ok = h.uploadStampAsset(c, "signature_image", "signature"); !ok {
		return
	}

	if err := h.Service.CreateStamp(c.Request.Context(), &stamp); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stamp)
}

func (h *StampHandler) UpdateStamp(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	stamp := models.PDFStamp{
		Name:              c.PostForm("name"),
		IsActive:          c.PostForm("is_active") == "true",
		StampImageURL:     c.PostForm("stamp_image_url"),
		SignatureImageURL: c.PostForm("signature_image_url"),
	}

	// New files replace whatever URL the form carried over.
	if url, ok := h.uploadStampAsset(c, "stamp_image", "stamp"); !ok {
		return
	} else if url != "" {
		stamp.StampImageURL = url
	}
	if url, ok := h.uploadStampAsset(c, "signature_image", "signature"); !ok {
		return
	} else if url != "" {
		stamp.SignatureImageURL = url
	}

	if err := h.Service.UpdateStamp(c.Request.Context(), id, &stamp); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stamp)
}

func (h *StampHandler) DeleteStamp(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteStamp(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Stamp deleted"})
}

// ActivateStamp makes the target the single active stamp; every other
// stamp is deactivated in the same operation.
func (h *StampHandler) ActivateStamp(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.Service.ActivateStamp(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Stamp activated"})
}
