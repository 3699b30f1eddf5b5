// server/internal/store/memory_test.go
package store

import (
	"context"
	"testing"
	"time"

	"global-track-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedShipment(t *testing.T, st *MemoryStore, tracking string, status models.ShipmentStatus, payment models.PaymentStatus, total string, created time.Time) models.Shipment {
	t.Helper()
	cost, err := models.NewMoney(total)
	require.NoError(t, err)
	s := models.Shipment{
		TrackingNumber: tracking,
		SenderName:     "Sender " + tracking,
		ReceiverName:   "Receiver " + tracking,
		Origin:         "A",
		Destination:    "B",
		Status:         status,
		ParcelWeight:   1,
		PaymentStatus:  payment,
		TotalCost:      cost,
		DateCreated:    created,
	}
	require.NoError(t, st.InsertShipment(context.Background(), &s))
	return s
}

func TestListShipmentsFilters(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	seedShipment(t, st, "GT-AAA11111", models.StatusPending, models.PaymentNotRequired, "10", now)
	seedShipment(t, st, "GT-BBB22222", models.StatusDelivered, models.PaymentPaid, "20", now)
	seedShipment(t, st, "GT-CCC33333", models.StatusDelivered, models.PaymentAwaiting, "30", now)

	byStatus, err := st.ListShipments(ctx, ShipmentFilter{Status: models.StatusDelivered})
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	byPayment, err := st.ListShipments(ctx, ShipmentFilter{PaymentStatus: models.PaymentPaid})
	require.NoError(t, err)
	assert.Len(t, byPayment, 1)

	bySearch, err := st.ListShipments(ctx, ShipmentFilter{Search: "bbb"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "GT-BBB22222", bySearch[0].TrackingNumber)

	combined, err := st.ListShipments(ctx, ShipmentFilter{Status: models.StatusDelivered, PaymentStatus: models.PaymentAwaiting})
	require.NoError(t, err)
	assert.Len(t, combined, 1)
}

func TestStatsAggregation(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)

	seedShipment(t, st, "GT-AAA11111", models.StatusDelivered, models.PaymentPaid, "100.00", now)
	seedShipment(t, st, "GT-BBB22222", models.StatusPending, models.PaymentPaid, "50.00", now.AddDate(0, 0, -30))
	seedShipment(t, st, "GT-CCC33333", models.StatusOnWay, models.PaymentAwaiting, "999.00", now)

	proof := models.PaymentProof{ShipmentID: mustShipmentID(t, st, "GT-CCC33333"), TrackingNumber: "GT-CCC33333", ImageURL: "x"}
	require.NoError(t, st.UpsertProof(ctx, &proof))

	stats, err := st.Stats(ctx, weekAgo)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalShipments)
	assert.Equal(t, int64(1), stats.DeliveredShipments)
	assert.Equal(t, int64(2), stats.WeeklyShipments)
	assert.Equal(t, int64(1), stats.PendingProofs)

	// Only paid shipments count as revenue; the awaiting one does not.
	wantTotal, err := models.NewMoney("150.00")
	require.NoError(t, err)
	assert.True(t, stats.TotalRevenue.Equal(wantTotal), "got total revenue %s", stats.TotalRevenue)

	wantWeekly, err := models.NewMoney("100.00")
	require.NoError(t, err)
	assert.True(t, stats.WeeklyRevenue.Equal(wantWeekly), "got weekly revenue %s", stats.WeeklyRevenue)

	assert.Equal(t, int64(1), stats.StatusCounts[models.StatusDelivered])
	assert.Equal(t, int64(2), stats.PaymentStatusCounts[models.PaymentPaid])
}

func mustShipmentID(t *testing.T, st *MemoryStore, tracking string) primitive.ObjectID {
	t.Helper()
	s, err := st.GetShipmentByTracking(context.Background(), tracking)
	require.NoError(t, err)
	return s.ID
}
