// server/internal/shipment/progress_test.go
package shipment

import (
	"testing"

	"global-track-api-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name   string
		status models.ShipmentStatus
		want   int
	}{
		{"pending", models.StatusPending, 25},
		{"picked up", models.StatusPicked, 50},
		{"on the way", models.StatusOnWay, 75},
		{"delivered", models.StatusDelivered, 100},
		{"on hold maps to first quarter", models.StatusOnHold, 25},
		{"customs hold maps to first quarter", models.StatusCustomHold, 25},
		{"unknown status", models.ShipmentStatus("teleported"), 0},
		{"empty status", models.ShipmentStatus(""), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Progress(tt.status))
		})
	}
}
