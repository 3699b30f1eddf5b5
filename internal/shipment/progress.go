// server/internal/shipment/progress.go
package shipment

import "global-track-api-server/internal/models"

// progressOrder is the main forward sequence; hold statuses sit outside it.
var progressOrder = []models.ShipmentStatus{
	models.StatusPending,
	models.StatusPicked,
	models.StatusOnWay,
	models.StatusDelivered,
}

// Progress returns the completion percentage shown on the tracking page:
// position in the main sequence scaled to 100, a fixed 25 for both hold
// statuses, 0 for anything unrecognized.
func Progress(status models.ShipmentStatus) int {
	for i, s := range progressOrder {
		if s == status {
			return (i + 1) * 100 / len(progressOrder)
		}
	}
	if status == models.StatusOnHold || status == models.StatusCustomHold {
		return 25
	}
	return 0
}
