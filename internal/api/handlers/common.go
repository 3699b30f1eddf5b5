// server/internal/api/handlers/common.go
package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"global-track-api-server/internal/shipment"
	"global-track-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxImageSize bounds public uploads; the storage layer enforces nothing.
const maxImageSize = 10 << 20 // 10 MB

// respondError maps service errors onto the HTTP surface.
func respondError(c *gin.Context, err error) {
	var vErr *shipment.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, store.ErrDuplicateTracking):
		c.JSON(http.StatusConflict, gin.H{"error": "A shipment with this tracking number already exists"})
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
	}
}

func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// checkImageUpload rejects oversized files and anything that does not
// declare itself an image. The bytes themselves are not trusted beyond
// this; the document generator re-validates before embedding.
func checkImageUpload(c *gin.Context, file *multipart.FileHeader) bool {
	if file.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image must be 10MB or smaller"})
		return false
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image uploads are accepted"})
		return false
	}
	return true
}

// uploadExt picks a safe extension for the stored object key.
func uploadExt(file *multipart.FileHeader) string {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif":
		return ext
	}
	return ".jpg"
}
