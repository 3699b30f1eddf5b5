// server/internal/api/handlers/settings_handler.go
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

// SettingsHandler reads and writes the singleton site settings record.
type SettingsHandler struct {
	Service    *shipment.Service
	S3Uploader *s3.Uploader
}

type SettingsRequest struct {
	SiteName       string `json:"siteName" binding:"required"`
	CompanyName    string `json:"companyName" binding:"required"`
	ContactEmail   string `json:"contactEmail" binding:"required,email"`
	ContactPhone   string `json:"contactPhone"`
	CompanyAddress string `json:"companyAddress"`
	WebsiteURL     string `json:"websiteURL"`
	FacebookURL    string `json:"facebookURL"`
	TwitterURL     string `json:"twitterURL"`
	LinkedinURL    string `json:"linkedinURL"`
	PDFHeaderTitle string `json:"pdfHeaderTitle" binding:"required"`
	PDFFooterText  string `json:"pdfFooterText"`
	CompanyLogoURL string `json:"companyLogoURL"`
}

// GetPublicSettings exposes the branding subset the public pages need.
func (h *SettingsHandler) GetPublicSettings(c *gin.Context) {
	s, err := h.Service.Settings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"siteName":       s.SiteName,
		"companyName":    s.CompanyName,
		"contactEmail":   s.ContactEmail,
		"contactPhone":   s.ContactPhone,
		"websiteURL":     s.WebsiteURL,
		"facebookURL":    s.FacebookURL,
		"twitterURL":     s.TwitterURL,
		"linkedinURL":    s.LinkedinURL,
		"companyLogoURL": s.CompanyLogoURL,
	})
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	s, err := h.Service.Settings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := models.SiteSettings{
		SiteName:       req.SiteName,
		CompanyName:    req.CompanyName,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		CompanyAddress: req.CompanyAddress,
		WebsiteURL:     req.WebsiteURL,
		FacebookURL:    req.FacebookURL,
		TwitterURL:     req.TwitterURL,
		LinkedinURL:    req.LinkedinURL,
		PDFHeaderTitle: req.PDFHeaderTitle,
		PDFFooterText:  req.PDFFooterText,
		CompanyLogoURL: req.CompanyLogoURL,
	}
	if err := h.Service.UpdateSettings(c.Request.Context(), &s); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// UploadLogo stores a new company logo and points the settings at it.
func (h *SettingsHandler) UploadLogo(c *gin.Context) {
	file, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A logo image is required"})
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

	objectKey := fmt.Sprintf("branding/%s%s", uuid.New().String(), uploadExt(file))
	logoURL, err := h.S3Uploader.UploadFile(c.Request.Context(), src, objectKey, file.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload", "details": err.Error()})
		return
	}

	s, err := h.Service.Settings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	s.CompanyLogoURL = logoURL
	if err := h.Service.UpdateSettings(c.Request.Context(), &s); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "companyLogoURL": logoURL})
}
