// server/internal/shipment/service_test.go
package shipment

import (
	"context"
	"testing"

	"global-track-api-server/internal/models"
	"global-track-api-server/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func money(t *testing.T, s string) models.Money {
	t.Helper()
	m, err := models.NewMoney(s)
	require.NoError(t, err)
	return m
}

func newTestService() (*Service, *store.MemoryStore) {
	st := store.NewMemoryStore()
	return NewService(st, zap.NewNop()), st
}

func validShipment(t *testing.T) *models.Shipment {
	t.Helper()
	return &models.Shipment{
		SenderName:      "Alice Carter",
		SenderAddress:   "1 Dock Rd, Liverpool",
		ReceiverName:    "Bob Mensah",
		ReceiverAddress: "14 Harbour St, Accra",
		Origin:          "Liverpool, UK",
		Destination:     "Accra, Ghana",
		CurrentLocation: "Liverpool, UK",
		ParcelWeight:    2.5,
		ShipmentCost:    money(t, "120.00"),
		ClearanceCost:   money(t, "35.50"),
	}
}

func TestCreateShipmentDefaultsAndTotal(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	s := validShipment(t)
	require.NoError(t, svc.CreateShipment(ctx, s))

	assert.NotEmpty(t, s.TrackingNumber)
	assert.True(t, len(s.TrackingNumber) >= 3 && s.TrackingNumber[:3] == "GT-")
	assert.Equal(t, models.StatusPending, s.Status)
	assert.Equal(t, models.PaymentNotRequired, s.PaymentStatus)
	assert.True(t, s.TotalCost.Equal(money(t, "155.50")), "got total %s", s.TotalCost)
	assert.False(t, s.DateCreated.IsZero())
	assert.Equal(t, s.DateCreated, s.LastUpdated)
}

func TestCreateShipmentDerivesAwaitingFromRequirePayment(t *testing.T) {
	svc, _ := newTestService()

	s := validShipment(t)
	s.RequirePayment = true
	require.NoError(t, svc.CreateShipment(context.Background(), s))
	assert.Equal(t, models.PaymentAwaiting, s.PaymentStatus)
}

func TestCreateShipmentDuplicateTracking(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first := validShipment(t)
	first.TrackingNumber = "GT-DEADBEEF"
	require.NoError(t, svc.CreateShipment(ctx, first))

	second := validShipment(t)
	second.TrackingNumber = "GT-DEADBEEF"
	err := svc.CreateShipment(ctx, second)
	assert.ErrorIs(t, err, store.ErrDuplicateTracking)
}

func TestCreateShipmentValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	s := validShipment(t)
	s.SenderName = "  "
	var vErr *ValidationError
	require.ErrorAs(t, svc.CreateShipment(ctx, s), &vErr)
	assert.Equal(t, "senderName", vErr.Field)

	s = validShipment(t)
	s.ParcelWeight = 0
	require.ErrorAs(t, svc.CreateShipment(ctx, s), &vErr)
	assert.Equal(t, "parcelWeight", vErr.Field)

	s = validShipment(t)
	s.ShipmentCost = money(t, "-1")
	require.ErrorAs(t, svc.CreateShipment(ctx, s), &vErr)
	assert.Equal(t, "shipmentCost", vErr.Field)
}

func TestUpdateShipmentRecomputesTotalAndKeepsIdentity(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	s := validShipment(t)
	require.NoError(t, svc.CreateShipment(ctx, s))

	updated := validShipment(t)
	updated.TrackingNumber = "GT-SOMETHINGELSE" // must be ignored
	updated.Status = models.StatusOnWay
	updated.ShipmentCost = money(t, "200.00")
	updated.ClearanceCost = money(t, "0.10")
	updated.TotalCost = money(t, "999999.99") // must be recomputed
	require.NoError(t, svc.UpdateShipment(ctx, s.ID, updated))

	got, err := svc.GetShipment(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.TrackingNumber, got.TrackingNumber)
	assert.Equal(t, s.DateCreated, got.DateCreated)
	assert.Equal(t, models.StatusOnWay, got.Status)
	assert.True(t, got.TotalCost.Equal(money(t, "200.10")), "got total %s", got.TotalCost)
	assert.True(t, got.LastUpdated.After(got.DateCreated))
}

func TestUpdateShipmentNotFound(t *testing.T) {
	svc, _ := newTestService()
	err := svc.UpdateShipment(context.Background(), primitive.NewObjectID(), validShipment(t))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteShipmentCascadesProof(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	s := validShipment(t)
	s.RequirePayment = true
	require.NoError(t, svc.CreateShipment(ctx, s))
	_, err := svc.SubmitPaymentProof(ctx, s.TrackingNumber, "https://cdn.example.com/proof.png")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteShipment(ctx, s.ID))

	_, err = st.GetShipment(ctx, s.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.GetProofByShipment(ctx, s.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSubmitPaymentProofUpserts(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	s := validShipment(t)
	require.NoError(t, svc.CreateShipment(ctx, s))

	first, err := svc.SubmitPaymentProof(ctx, s.TrackingNumber, "https://cdn.example.com/one.png")
	require.NoError(t, err)

	// Re-upload replaces the image on the same record and keeps the
	// shipment awaiting payment.
	second, err := svc.SubmitPaymentProof(ctx, s.TrackingNumber, "https://cdn.example.com/two.png")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "https://cdn.example.com/two.png", second.ImageURL)
	assert.False(t, second.IsVerified)

	pending, err := st.ListProofs(ctx, false)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	got, err := svc.GetShipment(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentAwaiting, got.PaymentStatus)
}

func TestSubmitPaymentProofUnknownTracking(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.SubmitPaymentProof(context.Background(), "GT-NOPE", "https://cdn.example.com/x.png")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestVerifyPaymentMarksBothRecords(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	s := validShipment(t)
	s.RequirePayment = true
	require.NoError(t, svc.CreateShipment(ctx, s))
	proof, err := svc.SubmitPaymentProof(ctx, s.TrackingNumber, "https://cdn.example.com/proof.png")
	require.NoError(t, err)

	require.NoError(t, svc.VerifyPayment(ctx, proof.ID))

	gotProof, err := st.GetProof(ctx, proof.ID)
	require.NoError(t, err)
	assert.True(t, gotProof.IsVerified)

	gotShipment, err := st.GetShipment(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, gotShipment.PaymentStatus)
}

func TestRejectPaymentLeavesPaymentStatus(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	s := validShipment(t)
	s.RequirePayment = true
	require.NoError(t, svc.CreateShipment(ctx, s))
	proof, err := svc.SubmitPaymentProof(ctx, s.TrackingNumber, "https://cdn.example.com/proof.png")
	require.NoError(t, err)

	rejected, err := svc.RejectPayment(ctx, proof.ID)
	require.NoError(t, err)
	assert.Equal(t, s.TrackingNumber, rejected.TrackingNumber)

	_, err = st.GetProof(ctx, proof.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Rejection only removes the proof; the customer can upload again
	// without the status flipping back.
	gotShipment, err := st.GetShipment(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentAwaiting, gotShipment.PaymentStatus)
}

func TestTrackReturnsProofWhenPresent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	s := validShipment(t)
	require.NoError(t, svc.CreateShipment(ctx, s))

	_, proof, err := svc.Track(ctx, s.TrackingNumber)
	require.NoError(t, err)
	assert.Nil(t, proof)

	_, err = svc.SubmitPaymentProof(ctx, s.TrackingNumber, "https://cdn.example.com/proof.png")
	require.NoError(t, err)

	_, proof, err = svc.Track(ctx, s.TrackingNumber)
	require.NoError(t, err)
	require.NotNil(t, proof)
	assert.Equal(t, "https://cdn.example.com/proof.png", proof.ImageURL)
}

func TestActivateStampIsExclusive(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first := &models.PDFStamp{Name: "Blue Seal", IsActive: true}
	require.NoError(t, svc.CreateStamp(ctx, first))
	assert.True(t, first.IsActive)

	second := &models.PDFStamp{Name: "Red Seal"}
	require.NoError(t, svc.CreateStamp(ctx, second))

	require.NoError(t, svc.ActivateStamp(ctx, second.ID))

	active, err := svc.ActiveStamp(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)

	stamps, err := svc.ListStamps(ctx)
	require.NoError(t, err)
	activeCount := 0
	for _, st := range stamps {
		if st.IsActive {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)
}

func TestActiveStampNilWhenNoneActive(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.CreateStamp(ctx, &models.PDFStamp{Name: "Dormant"}))

	active, err := svc.ActiveStamp(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestSettingsLazyCreateAndUpdate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	settings, err := svc.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "GlobalTrack Pro", settings.CompanyName)

	settings.CompanyName = "Acme Freight"
	require.NoError(t, svc.UpdateSettings(ctx, &settings))

	again, err := svc.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Acme Freight", again.CompanyName)
}

func TestTimelineMarksHoldAfterPickup(t *testing.T) {
	s := models.Shipment{Status: models.StatusOnHold}
	steps := Timeline(s)
	require.Len(t, steps, 4)
	assert.True(t, steps[0].Completed)
	assert.True(t, steps[1].Completed)
	assert.False(t, steps[2].Completed)
	assert.False(t, steps[3].Completed)
}

func TestSimulatedUpdatesGrowWithStatus(t *testing.T) {
	pending := SimulatedUpdates(models.Shipment{Status: models.StatusPending, CurrentLocation: "Hub A"})
	assert.Len(t, pending, 1)

	delivered := SimulatedUpdates(models.Shipment{Status: models.StatusDelivered, CurrentLocation: "Hub A"})
	assert.Len(t, delivered, 4)
	assert.Equal(t, "Successfully delivered to recipient", delivered[3].Message)
}
