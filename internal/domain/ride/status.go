package ride

import "github.com/zinklake/shuttle/internal/domain/entities"

var statusInfo = map[entities.RideStatus]entities.StatusInfo{
	entities.RideStatusScheduled: {
		Label:       "Scheduled",
		Description: "Your ride is confirmed and scheduled.",
		Icon:        "calendar",
		Color:       "#3498db",
	},
	entities.RideStatusInProgress: {
		Label:       "In Progress",
		Description: "Your driver is on the way.",
		Icon:        "bicycle",
		Color:       "#2ecc71",
	},
	entities.RideStatusArriving: {
		Label:       "Arriving Soon",
		Description: "Your driver is arriving in a few minutes.",
		Icon:        "location",
		Color:       "#f39c12",
	},
	entities.RideStatusCompleted: {
		Label:       "Completed",
		Description: "Your ride has been completed successfully.",
		Icon:        "checkmark-circle",
		Color:       "#27ae60",
	},
	entities.RideStatusCancelled: {
		Label:       "Cancelled",
		Description: "This ride has been cancelled.",
		Icon:        "close-circle",
		Color:       "#e74c3c",
	},
}

var unknownStatusInfo = entities.StatusInfo{
	Label:       "Unknown",
	Description: "Ride status is not available.",
	Icon:        "help-circle",
	Color:       "#95a5a6",
}

// Describe returns display metadata for a status.
func Describe(status entities.RideStatus) entities.StatusInfo {
	if info, ok := statusInfo[status]; ok {
		return info
	}
	return unknownStatusInfo
}

// View decorates a ride with its status metadata and tracker.
func View(r entities.Ride, policy CancelledPolicy) entities.RideView {
	return entities.RideView{
		Ride:       r,
		StatusInfo: Describe(r.Status),
		Tracker:    Steps(r.Status, policy),
	}
}
