// server/internal/models/site_settings.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SiteSettings is the singleton branding record, created lazily on first
// access with the defaults below.
type SiteSettings struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SiteName       string             `bson:"siteName" json:"siteName"`
	CompanyName    string             `bson:"companyName" json:"companyName"`
	ContactEmail   string             `bson:"contactEmail" json:"contactEmail"`
	ContactPhone   string             `bson:"contactPhone" json:"contactPhone"`
	CompanyAddress string             `bson:"companyAddress" json:"companyAddress"`
	WebsiteURL     string             `bson:"websiteURL" json:"websiteURL"`
	FacebookURL    string             `bson:"facebookURL,omitempty" json:"facebookURL"`
	TwitterURL     string             `bson:"twitterURL,omitempty" json:"twitterURL"`
	LinkedinURL    string             `bson:"linkedinURL,omitempty" json:"linkedinURL"`
	PDFHeaderTitle string             `bson:"pdfHeaderTitle" json:"pdfHeaderTitle"`
	PDFFooterText  string             `bson:"pdfFooterText" json:"pdfFooterText"`
	CompanyLogoURL string             `bson:"companyLogoURL,omitempty" json:"companyLogoURL"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DefaultSiteSettings seeds the singleton on first access.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		SiteName:       "GlobalTrack Pro",
		CompanyName:    "GlobalTrack Pro",
		ContactEmail:   "support@globaltrackpro.com",
		ContactPhone:   "+1 000 000 0000",
		WebsiteURL:     "https://globaltrackpro.com",
		PDFHeaderTitle: "SHIPMENT TRACKING DETAILS",
		PDFFooterText:  "This document was generated electronically and is valid without signature.",
		UpdatedAt:      time.Now(),
	}
}
