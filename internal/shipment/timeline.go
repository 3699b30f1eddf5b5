// server/internal/shipment/timeline.go
package shipment

import "global-track-api-server/internal/models"

// TimelineStep is one entry of the four-step progress timeline on the
// public tracking page.
type TimelineStep struct {
	Key         models.ShipmentStatus `json:"key"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Icon        string                `json:"icon"`
	Active      bool                  `json:"active"`
	Completed   bool                  `json:"completed"`
}

// TrackingUpdate is one entry of the simulated movement feed. The feed is
// canned: it is derived from the current status, not from real scans.
type TrackingUpdate struct {
	Time     string `json:"time"`
	Location string `json:"location"`
	Message  string `json:"message"`
	Icon     string `json:"icon"`
}

func statusIn(status models.ShipmentStatus, set ...models.ShipmentStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

// Timeline builds the four-step timeline for a shipment. Hold statuses
// mark "Picked Up" as the last completed step.
func Timeline(s models.Shipment) []TimelineStep {
	steps := []TimelineStep{
		{
			Key:         models.StatusPending,
			Name:        "Order Processing",
			Description: "Order received and being processed",
			Icon:        "receipt",
			Active:      s.Status == models.StatusPending,
			Completed:   statusIn(s.Status, models.StatusPicked, models.StatusOnHold, models.StatusOnWay, models.StatusCustomHold, models.StatusDelivered),
		},
		{
			Key:         models.StatusPicked,
			Name:        "Picked Up",
			Description: "Package collected by courier",
			Icon:        "shopping-bag",
			Active:      s.Status == models.StatusPicked,
			Completed:   statusIn(s.Status, models.StatusOnHold, models.StatusOnWay, models.StatusCustomHold, models.StatusDelivered),
		},
		{
			Key:         models.StatusOnWay,
			Name:        "In Transit",
			Description: "Shipment is on the way to destination",
			Icon:        "truck",
			Active:      s.Status == models.StatusOnWay,
			Completed:   statusIn(s.Status, models.StatusCustomHold, models.StatusDelivered),
		},
		{
			Key:         models.StatusDelivered,
			Name:        "Delivered",
			Description: "Package delivered successfully",
			Icon:        "check-circle",
			Active:      s.Status == models.StatusDelivered,
			Completed:   s.Status == models.StatusDelivered,
		},
	}
	return steps
}

// SimulatedUpdates generates the canned movement feed for a shipment.
func SimulatedUpdates(s models.Shipment) []TrackingUpdate {
	updates := []TrackingUpdate{
		{
			Time:     "Just now",
			Location: s.CurrentLocation,
			Message:  "Package scanned at current facility",
			Icon:     "map-marker-alt",
		},
	}

	if statusIn(s.Status, models.StatusPicked, models.StatusOnHold, models.StatusOnWay, models.StatusCustomHold, models.StatusDelivered) {
		updates = append(updates, TrackingUpdate{
			Time:     "2 hours ago",
			Location: "Distribution Center",
			Message:  "Departed from sorting facility",
			Icon:     "truck",
		})
	}
	if statusIn(s.Status, models.StatusOnWay, models.StatusCustomHold, models.StatusDelivered) {
		updates = append(updates, TrackingUpdate{
			Time:     "5 hours ago",
			Location: "Main Hub",
			Message:  "Arrived at regional hub",
			Icon:     "warehouse",
		})
	}

	switch s.Status {
	case models.StatusOnHold:
		updates = append(updates, TrackingUpdate{
			Time:     "1 hour ago",
			Location: "Processing Center",
			Message:  "Shipment placed on hold for review",
			Icon:     "pause-circle",
		})
	case models.StatusCustomHold:
		updates = append(updates, TrackingUpdate{
			Time:     "1 hour ago",
			Location: "Customs Office",
			Message:  "Custom clearance in progress",
			Icon:     "file-alt",
		})
	case models.StatusDelivered:
		updates = append(updates, TrackingUpdate{
			Time:     "30 minutes ago",
			Location: "Final Destination",
			Message:  "Successfully delivered to recipient",
			Icon:     "check-circle",
		})
	}

	return updates
}
