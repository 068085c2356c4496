package trip

import (
	"time"
)

type Status string

const (
	StatusRequested  Status = "requested"
	StatusAccepted   Status = "accepted"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Trip as listed on the admin dashboard. The client never transitions status.
type Trip struct {
	ID                 string    `json:"id"`
	PassengerID        string    `json:"passenger_id"`
	DriverID           *string   `json:"driver_id,omitempty"`
	PickupAddress      string    `json:"pickup_address"`
	DestinationAddress string    `json:"destination_address"`
	EstimatedPrice     float64   `json:"estimated_price"`
	Status             Status    `json:"status"`
	RequestedAt        time.Time `json:"requested_at"`
}

// HistoryEntry is the passenger's read-only projection of a finished trip.
type HistoryEntry struct {
	ID                   string     `json:"id"`
	PickupAddress        string     `json:"pickup_address"`
	DestinationAddress   string     `json:"destination_address"`
	FinalPrice           float64    `json:"final_price"`
	Status               Status     `json:"status"`
	RequestedAt          time.Time  `json:"requested_at"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
	DurationMinutes      *int       `json:"duration_minutes,omitempty"`
	DriverName           string     `json:"driver_name,omitempty"`
	DriverPhoto          string     `json:"driver_photo,omitempty"`
	DriverRating         *float64   `json:"driver_rating,omitempty"`
	PassengerRatingGiven *int       `json:"passenger_rating_given,omitempty"`
}

// IsValid validates the status
func (s Status) IsValid() bool {
	switch s {
	case StatusRequested, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Label returns the localized status text
func (s Status) Label() string {
	switch s {
	case StatusRequested:
		return "Solicitada"
	case StatusAccepted:
		return "Aceita"
	case StatusInProgress:
		return "Em andamento"
	case StatusCompleted:
		return "Concluída"
	case StatusCancelled:
		return "Cancelada"
	}
	return string(s)
}

// Color returns the hex color used for the status badge
func (s Status) Color() string {
	switch s {
	case StatusRequested:
		return "#FFA500"
	case StatusAccepted:
		return "#007AFF"
	case StatusInProgress:
		return "#34C759"
	case StatusCompleted:
		return "#8E8E93"
	case StatusCancelled:
		return "#FF3B30"
	}
	return "#8E8E93"
}

// DateLayout is the dd/mm/yyyy hh:mm layout used on every list
const DateLayout = "02/01/2006 15:04"

// FormatDate renders t in local time, or "-" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(DateLayout)
}

// MostRecent returns at most n trips ordered newest first. The input is not modified.
func MostRecent(trips []Trip, n int) []Trip {
	sorted := make([]Trip, len(trips))
	copy(sorted, trips)
	// insertion sort keeps equal timestamps in backend order
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].RequestedAt.After(sorted[j-1].RequestedAt); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
