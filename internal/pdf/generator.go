// server/internal/pdf/generator.go
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"

	"global-track-api-server/internal/models"

	"github.com/jung-kurt/gofpdf"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// AssetLoader fetches image bytes for a stored asset URL.
type AssetLoader interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Generator renders a shipment's tracking document. It is deterministic
// given (shipment, settings, stamp) and never fails because an optional
// image is missing or unreadable: each asset degrades on its own.
type Generator struct {
	assets AssetLoader
	logger *zap.Logger

	// compress toggles PDF stream compression; tests turn it off to
	// assert on the raw content streams.
	compress bool
}

func NewGenerator(assets AssetLoader, logger *zap.Logger) *Generator {
	return &Generator{assets: assets, logger: logger, compress: true}
}

var (
	stripPolicy     = bluemonday.StrictPolicy()
	currencyPrinter = message.NewPrinter(language.English)
)

// plainText strips any markup the admin editor left in stored text, so the
// document always renders user content as plain text.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(s)))
}

// formatCurrency renders "$1,234.50".
func formatCurrency(m models.Money) string {
	f, _ := m.Decimal().Round(2).Float64()
	return currencyPrinter.Sprintf("$%.2f", f)
}

// Colors lifted from the site theme.
var (
	colorTitle   = [3]int{30, 64, 175}   // #1E40AF
	colorHeader  = [3]int{37, 99, 235}   // #2563EB
	colorRowHead = [3]int{229, 231, 235} // #E5E7EB
	colorGray    = [3]int{128, 128, 128}
)

const (
	pageWidth = 180.0 // A4 minus margins
	halfWidth = pageWidth / 2
)

// Generate renders the tracking document for one shipment. stamp may be
// nil when no stamp is active.
func (g *Generator) Generate(ctx context.Context, s models.Shipment, settings models.SiteSettings, stamp *models.PDFStamp) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(g.compress)
	doc.SetMargins(15, 20, 15)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	g.header(ctx, doc, tr, settings)
	g.trackingSummary(doc, tr, s)
	g.parties(doc, tr, s)
	g.shipmentDetails(doc, tr, s)
	if s.RequirePayment && s.ShowPaymentInfo {
		g.paymentInfo(doc, tr, s)
	}
	if remarks := plainText(s.Remarks); remarks != "" {
		g.remarks(doc, tr, remarks)
	}
	g.parcelImage(ctx, doc, tr, s)
	if stamp != nil {
		g.authentication(ctx, doc, tr, *stamp)
	}
	g.footer(doc, tr, settings)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("build tracking document: %w", err)
	}
	return buf.Bytes(), nil
}

// registerImage fetches and registers an image with the document. A
// missing or unreadable asset returns false and leaves the document
// usable; this is the one place errors are swallowed on purpose.
func (g *Generator) registerImage(ctx context.Context, doc *gofpdf.Fpdf, url, name string) bool {
	if url == "" {
		return false
	}
	data, err := g.assets.Fetch(ctx, url)
	if err != nil {
		g.logger.Warn("tracking document asset unreadable, section degraded",
			zap.String("asset", url), zap.Error(err))
		return false
	}

	var imageType string
	switch http.DetectContentType(data) {
	case "image/png":
		imageType = "PNG"
	case "image/jpeg":
		imageType = "JPG"
	case "image/gif":
		imageType = "GIF"
	default:
		g.logger.Warn("tracking document asset has unsupported format, section degraded",
			zap.String("asset", url))
		return false
	}

	opts := gofpdf.ImageOptions{ImageType: imageType}
	doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if doc.Err() {
		g.logger.Warn("tracking document asset rejected by renderer, section degraded",
			zap.String("asset", url), zap.Error(doc.Error()))
		doc.ClearError()
		return false
	}
	return true
}

func (g *Generator) sectionHeading(doc *gofpdf.Fpdf, text string) {
	doc.SetFont("Helvetica", "B", 12)
	doc.SetTextColor(colorTitle[0], colorTitle[1], colorTitle[2])
	doc.CellFormat(pageWidth, 8, text, "", 1, "L", false, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.Ln(1)
}

// kvRow draws one bordered row of two label/value pairs.
func (g *Generator) kvRow(doc *gofpdf.Fpdf, tr func(string) string, l1, v1, l2, v2 string, boldV1 bool) {
	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(colorRowHead[0], colorRowHead[1], colorRowHead[2])
	doc.CellFormat(38, 7, l1, "1", 0, "L", true, 0, "")
	style := ""
	if boldV1 {
		style = "B"
	}
	doc.SetFont("Helvetica", style, 9)
	doc.CellFormat(57, 7, tr(v1), "1", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "B", 9)
	doc.CellFormat(33, 7, l2, "1", 0, "L", l2 != "", 0, "")
	doc.SetFont("Helvetica", "", 9)
	doc.CellFormat(52, 7, tr(v2), "1", 1, "L", false, 0, "")
}

func (g *Generator) header(ctx context.Context, doc *gofpdf.Fpdf, tr func(string) string, settings models.SiteSettings) {
	if g.registerImage(ctx, doc, settings.CompanyLogoURL, "company-logo") {
		x := (210 - 50) / 2.0
		doc.ImageOptions("company-logo", x, doc.GetY(), 50, 25, false, gofpdf.ImageOptions{}, 0, "")
		doc.SetY(doc.GetY() + 28)
	}

	doc.SetFont("Helvetica", "B", 16)
	doc.SetTextColor(colorHeader[0], colorHeader[1], colorHeader[2])
	doc.CellFormat(pageWidth, 9, tr(strings.ToUpper(settings.CompanyName)), "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(0, 0, 0)
	doc.CellFormat(pageWidth, 6, "Professional Shipping & Logistics", "", 1, "C", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Helvetica", "B", 18)
	doc.SetTextColor(colorTitle[0], colorTitle[1], colorTitle[2])
	doc.CellFormat(pageWidth, 10, tr(settings.PDFHeaderTitle), "", 1, "C", false, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.Ln(6)
}

func (g *Generator) trackingSummary(doc *gofpdf.Fpdf, tr func(string) string, s models.Shipment) {
	g.kvRow(doc, tr, "Tracking Number:", s.TrackingNumber, "Status:", s.Status.Label(), false)
	g.kvRow(doc, tr,
		"Date Created:", s.DateCreated.Format("2006-01-02 15:04"),
		"Last Updated:", s.LastUpdated.Format("2006-01-02 15:04"), false)
	if s.EstimatedDelivery != nil {
		g.kvRow(doc, tr, "Estimated Delivery:", s.EstimatedDelivery.Format("2006-01-02"), "", "", false)
	}
	doc.Ln(6)
}

func (g *Generator) parties(doc *gofpdf.Fpdf, tr func(string) string, s models.Shipment) {
	g.sectionHeading(doc, "SENDER & RECEIVER INFORMATION")

	doc.SetFont("Helvetica", "B", 11)
	doc.SetFillColor(colorTitle[0], colorTitle[1], colorTitle[2])
	doc.SetTextColor(255, 255, 255)
	doc.CellFormat(halfWidth, 8, "SENDER INFORMATION", "1", 0, "C", true, 0, "")
	doc.CellFormat(halfWidth, 8, "RECEIVER INFORMATION", "1", 1, "C", true, 0, "")
	doc.SetTextColor(0, 0, 0)

	doc.SetFont("Helvetica", "", 9)
	rows := [][2]string{
		{"Name: " + s.SenderName, "Name: " + s.ReceiverName},
		{"Address: " + s.SenderAddress, "Address: " + s.ReceiverAddress},
		{"Email: " + s.SenderEmail, "Email: " + s.ReceiverEmail},
		{"Phone: " + s.SenderPhone, "Phone: " + s.ReceiverPhone},
	}
	for _, row := range rows {
		doc.CellFormat(halfWidth, 7, tr(row[0]), "1", 0, "L", false, 0, "")
		doc.CellFormat(halfWidth, 7, tr(row[1]), "1", 1, "L", false, 0, "")
	}
	doc.Ln(6)
}

func (g *Generator) shipmentDetails(doc *gofpdf.Fpdf, tr func(string) string, s models.Shipment) {
	g.sectionHeading(doc, "SHIPMENT DETAILS")
	g.kvRow(doc, tr, "Origin:", s.Origin, "Destination:", s.Destination, false)
	g.kvRow(doc, tr,
		"Current Location:", s.CurrentLocation,
		"Parcel Weight:", fmt.Sprintf("%g kg", s.ParcelWeight), false)
	if s.ParcelDescription != "" {
		g.kvRow(doc, tr, "Description:", plainText(s.ParcelDescription), "", "", false)
	}
	doc.Ln(5)
}

func (g *Generator) paymentInfo(doc *gofpdf.Fpdf, tr func(string) string, s models.Shipment) {
	g.sectionHeading(doc, "PAYMENT INFORMATION")
	g.kvRow(doc, tr,
		"Payment Method:", strings.ToUpper(s.PaymentMethod.Label()),
		"Payment Status:", s.PaymentStatus.Label(), false)
	g.kvRow(doc, tr,
		"Shipment Cost:", formatCurrency(s.ShipmentCost),
		"Clearance Cost:", formatCurrency(s.ClearanceCost), false)
	g.kvRow(doc, tr,
		"Total Amount:", formatCurrency(s.TotalCost),
		"Wallet Address:", s.CryptoWallet, true)
	doc.Ln(5)
}

func (g *Generator) remarks(doc *gofpdf.Fpdf, tr func(string) string, remarks string) {
	g.sectionHeading(doc, "REMARKS")
	doc.SetFont("Helvetica", "", 10)
	doc.MultiCell(pageWidth, 5, tr(remarks), "", "L", false)
	doc.Ln(6)
}

func (g *Generator) parcelImage(ctx context.Context, doc *gofpdf.Fpdf, tr func(string) string, s models.Shipment) {
	if s.ParcelImageURL == "" {
		return
	}
	if !g.registerImage(ctx, doc, s.ParcelImageURL, "parcel-image") {
		return
	}
	g.sectionHeading(doc, "PARCEL IMAGE")
	doc.ImageOptions("parcel-image", doc.GetX(), doc.GetY(), 100, 75, false, gofpdf.ImageOptions{}, 0, "")
	doc.SetY(doc.GetY() + 80)
}

// authentication draws the stamp/signature block. Each image falls back to
// its placeholder text independently.
func (g *Generator) authentication(ctx context.Context, doc *gofpdf.Fpdf, tr func(string) string, stamp models.PDFStamp) {
	doc.Ln(10)
	top := doc.GetY()

	if g.registerImage(ctx, doc, stamp.StampImageURL, "stamp-image") {
		x := 15 + (halfWidth-38)/2
		doc.ImageOptions("stamp-image", x, top, 38, 38, false, gofpdf.ImageOptions{}, 0, "")
	} else {
		doc.SetFont("Helvetica", "B", 10)
		doc.SetXY(15, top+16)
		doc.CellFormat(halfWidth, 6, "OFFICIAL STAMP", "", 0, "C", false, 0, "")
	}

	if g.registerImage(ctx, doc, stamp.SignatureImageURL, "signature-image") {
		x := 15 + halfWidth + (halfWidth-50)/2
		doc.ImageOptions("signature-image", x, top+13, 50, 12, false, gofpdf.ImageOptions{}, 0, "")
	} else {
		doc.SetFont("Helvetica", "B", 10)
		doc.SetXY(15+halfWidth, top+16)
		doc.CellFormat(halfWidth, 6, "AUTHORIZED SIGNATURE", "", 0, "C", false, 0, "")
	}

	doc.SetXY(15, top+40)
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(halfWidth, 6, "Official Stamp", "", 0, "C", false, 0, "")
	doc.CellFormat(halfWidth, 6, "Authorized Signature", "", 1, "C", false, 0, "")
}

func (g *Generator) footer(doc *gofpdf.Fpdf, tr func(string) string, settings models.SiteSettings) {
	doc.Ln(10)
	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(0, 0, 0)
	doc.CellFormat(pageWidth, 5, tr(settings.CompanyName), "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(colorGray[0], colorGray[1], colorGray[2])
	contact := fmt.Sprintf("Email: %s | Phone: %s", settings.ContactEmail, settings.ContactPhone)
	doc.CellFormat(pageWidth, 4, tr(contact), "", 1, "C", false, 0, "")
	doc.CellFormat(pageWidth, 4, tr(settings.WebsiteURL), "", 1, "C", false, 0, "")
	doc.Ln(3)
	if settings.PDFFooterText != "" {
		doc.MultiCell(pageWidth, 4, tr(plainText(settings.PDFFooterText)), "", "C", false)
	}
	doc.CellFormat(pageWidth, 4, "Thank you for using our services!", "", 1, "C", false, 0, "")
	doc.SetTextColor(0, 0, 0)
}
