package stats

// Stats are aggregate counters computed by the backend
type Stats struct {
	TotalUsers      int     `json:"total_users"`
	TotalDrivers    int     `json:"total_drivers"`
	TotalPassengers int     `json:"total_passengers"`
	TotalTrips      int     `json:"total_trips"`
	CompletedTrips  int     `json:"completed_trips"`
	CompletionRate  float64 `json:"completion_rate"`
}
