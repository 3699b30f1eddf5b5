// server/internal/pdf/generator_test.go
package pdf

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"global-track-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fetcherFunc adapts a function to the AssetLoader interface.
type fetcherFunc func(ctx context.Context, url string) ([]byte, error)

func (f fetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

var failingLoader = fetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
	return nil, errors.New("object not found")
})

// newTestGenerator disables stream compression so the content streams can
// be searched as plain text.
func newTestGenerator(loader AssetLoader) *Generator {
	g := NewGenerator(loader, zap.NewNop())
	g.compress = false
	return g
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 64, B: 175, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testShipment(t *testing.T) models.Shipment {
	t.Helper()
	shipmentCost, err := models.NewMoney("1200.00")
	require.NoError(t, err)
	clearanceCost, err := models.NewMoney("34.50")
	require.NoError(t, err)
	created := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	return models.Shipment{
		TrackingNumber:  "GT-1A2B3C4D",
		SenderName:      "Alice Carter",
		SenderAddress:   "1 Dock Rd, Liverpool",
		ReceiverName:    "Bob Mensah",
		ReceiverAddress: "14 Harbour St, Accra",
		Origin:          "Liverpool, UK",
		Destination:     "Accra, Ghana",
		CurrentLocation: "Madrid, Spain",
		Status:          models.StatusOnWay,
		ParcelWeight:    2.5,
		RequirePayment:  true,
		ShowPaymentInfo: true,
		PaymentMethod:   models.MethodBank,
		PaymentStatus:   models.PaymentAwaiting,
		ShipmentCost:    shipmentCost,
		ClearanceCost:   clearanceCost,
		TotalCost:       shipmentCost.Add(clearanceCost),
		DateCreated:     created,
		LastUpdated:     created.Add(48 * time.Hour),
	}
}

func TestGenerateContainsCoreSections(t *testing.T) {
	g := newTestGenerator(failingLoader)
	settings := models.DefaultSiteSettings()

	out, err := g.Generate(context.Background(), testShipment(t), settings, nil)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	for _, want := range []string{
		"GLOBALTRACK PRO",
		"SHIPMENT TRACKING DETAILS",
		"GT-1A2B3C4D",
		"On the Way",
		"SENDER & RECEIVER INFORMATION",
		"SHIPMENT DETAILS",
		"PAYMENT INFORMATION",
		"Thank you for using our services!",
	} {
		assert.True(t, bytes.Contains(out, []byte(want)), "document missing %q", want)
	}
}

func TestGenerateCurrencyFormatting(t *testing.T) {
	g := newTestGenerator(failingLoader)

	out, err := g.Generate(context.Background(), testShipment(t), models.DefaultSiteSettings(), nil)
	require.NoError(t, err)

	assert.True(t, bytes.Contains(out, []byte("$1,200.00")))
	assert.True(t, bytes.Contains(out, []byte("$1,234.50")))
}

func TestGeneratePaymentSectionGating(t *testing.T) {
	g := newTestGenerator(failingLoader)
	settings := models.DefaultSiteSettings()
	ctx := context.Background()

	noPayment := testShipment(t)
	noPayment.RequirePayment = false
	out, err := g.Generate(ctx, noPayment, settings, nil)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(out, []byte("PAYMENT INFORMATION")))

	// Required but hidden from the document.
	hidden := testShipment(t)
	hidden.ShowPaymentInfo = false
	out, err = g.Generate(ctx, hidden, settings, nil)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(out, []byte("PAYMENT INFORMATION")))
}

func TestGenerateRemarksStripped(t *testing.T) {
	g := newTestGenerator(failingLoader)
	ctx := context.Background()

	s := testShipment(t)
	s.Remarks = "<p>Handle with <b>care</b> &amp; keep dry</p>"
	out, err := g.Generate(ctx, s, models.DefaultSiteSettings(), nil)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(out, []byte("Handle with care & keep dry")))
	assert.False(t, bytes.Contains(out, []byte("<b>")))

	// Markup-only remarks collapse to nothing and drop the section.
	s.Remarks = "<p>   </p>"
	out, err = g.Generate(ctx, s, models.DefaultSiteSettings(), nil)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(out, []byte("REMARKS")))
}

func TestGenerateStampPlaceholders(t *testing.T) {
	g := newTestGenerator(failingLoader)
	stamp := models.PDFStamp{
		Name:              "Blue Seal",
		StampImageURL:     "https://cdn.example.com/stamp.png",
		SignatureImageURL: "https://cdn.example.com/sig.png",
		IsActive:          true,
	}

	out, err := g.Generate(context.Background(), testShipment(t), models.DefaultSiteSettings(), &stamp)
	require.NoError(t, err)

	// Both assets unreadable: the block degrades to placeholders instead of
	// failing the document.
	assert.True(t, bytes.Contains(out, []byte("OFFICIAL STAMP")))
	assert.True(t, bytes.Contains(out, []byte("AUTHORIZED SIGNATURE")))
}

func TestGenerateStampImagesReplacePlaceholders(t *testing.T) {
	asset := pngBytes(t)
	loader := fetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
		return asset, nil
	})
	g := newTestGenerator(loader)
	stamp := models.PDFStamp{
		Name:              "Blue Seal",
		StampImageURL:     "https://cdn.example.com/stamp.png",
		SignatureImageURL: "https://cdn.example.com/sig.png",
		IsActive:          true,
	}

	out, err := g.Generate(context.Background(), testShipment(t), models.DefaultSiteSettings(), &stamp)
	require.NoError(t, err)

	assert.False(t, bytes.Contains(out, []byte("OFFICIAL STAMP")))
	assert.False(t, bytes.Contains(out, []byte("AUTHORIZED SIGNATURE")))
	// The printed captions stay either way.
	assert.True(t, bytes.Contains(out, []byte("Official Stamp")))
	assert.True(t, bytes.Contains(out, []byte("Authorized Signature")))
}

func TestGenerateSkipsAuthenticationWithoutStamp(t *testing.T) {
	g := newTestGenerator(failingLoader)

	out, err := g.Generate(context.Background(), testShipment(t), models.DefaultSiteSettings(), nil)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(out, []byte("Official Stamp")))
}

func TestGenerateUnsupportedAssetFormatDegrades(t *testing.T) {
	loader := fetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
		return []byte("definitely not an image"), nil
	})
	g := newTestGenerator(loader)

	s := testShipment(t)
	s.ParcelImageURL = "https://cdn.example.com/parcel.bin"
	out, err := g.Generate(context.Background(), s, models.DefaultSiteSettings(), nil)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(out, []byte("PARCEL IMAGE")))
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p>hello</p>", "hello"},
		{"a &amp; b", "a & b"},
		{"  <div> </div> ", ""},
		{"no markup", "no markup"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, plainText(tt.in))
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234.5", "$1,234.50"},
		{"0", "$0.00"},
		{"1000000", "$1,000,000.00"},
	}
	for _, tt := range tests {
		m, err := models.NewMoney(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, formatCurrency(m))
	}
}
