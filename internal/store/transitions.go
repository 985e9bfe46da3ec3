package store

import "bgcafe/cafe-service/internal/models"

// OrderStatuses lists the recognized order statuses in lifecycle order.
var OrderStatuses = []string{
	models.StatusPending,
	models.StatusPreparing,
	models.StatusReady,
	models.StatusDelivered,
	models.StatusCancelled,
}

func ValidStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Cancellable reports whether an order in the given status may still be
// cancelled. Ready, delivered, and cancelled orders are past the point of
// cancellation.
func Cancellable(status string) bool {
	return status == models.StatusPending || status == models.StatusPreparing
}
