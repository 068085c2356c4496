package chat

import (
	"time"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/trip"
)

// Summary of a trip-scoped conversation as shown in the admin chat tab.
type Summary struct {
	TripID                 string      `json:"trip_id"`
	TripPickupAddress      string      `json:"trip_pickup_address"`
	TripDestinationAddress string      `json:"trip_destination_address"`
	TripStatus             trip.Status `json:"trip_status"`
	MessageCount           int         `json:"message_count"`
	PassengerName          string      `json:"passenger_name"`
	DriverName             string      `json:"driver_name"`
	LastMessage            string      `json:"last_message"`
	LastTimestamp          *time.Time  `json:"last_timestamp,omitempty"`
}

// Preview truncates the last message for a single list row.
func (s *Summary) Preview(max int) string {
	r := []rune(s.LastMessage)
	if len(r) <= max {
		return s.LastMessage
	}
	return string(r[:max]) + "..."
}
