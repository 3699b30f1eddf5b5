// server/internal/api/handlers/tracking_handler_test.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"global-track-api-server/internal/models"
	"global-track-api-server/internal/shipment"
	"global-track-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func trackingRouter(t *testing.T) (*gin.Engine, *shipment.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := shipment.NewService(store.NewMemoryStore(), zap.NewNop())
	h := &TrackingHandler{Service: svc}
	router := gin.New()
	router.GET("/track", h.TrackShipment)
	return router, svc
}

func TestTrackShipmentUnknownCodeIsNeutral(t *testing.T) {
	router, _ := trackingRouter(t)

	for _, target := range []string{"/track", "/track?tracking_number=GT-NOPE"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, false, body["found"])
		assert.NotContains(t, body, "shipment")
	}
}

func TestTrackShipmentFound(t *testing.T) {
	router, svc := trackingRouter(t)

	cost, err := models.NewMoney("50.00")
	require.NoError(t, err)
	s := &models.Shipment{
		TrackingNumber: "GT-ABCD1234",
		SenderName:     "Alice Carter",
		ReceiverName:   "Bob Mensah",
		Origin:         "Liverpool, UK",
		Destination:    "Accra, Ghana",
		Status:         models.StatusOnWay,
		ParcelWeight:   1.5,
		ShipmentCost:   cost,
	}
	require.NoError(t, svc.CreateShipment(context.Background(), s))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/track?tracking_number=GT-ABCD1234", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Found         bool                      `json:"found"`
		Progress      int                       `json:"progress"`
		ProofUploaded bool                      `json:"proofUploaded"`
		Timeline      []shipment.TimelineStep   `json:"timeline"`
		Updates       []shipment.TrackingUpdate `json:"updates"`
		Shipment      models.Shipment           `json:"shipment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Found)
	assert.Equal(t, 75, body.Progress)
	assert.False(t, body.ProofUploaded)
	assert.Len(t, body.Timeline, 4)
	assert.NotEmpty(t, body.Updates)
	assert.Equal(t, "GT-ABCD1234", body.Shipment.TrackingNumber)
}
