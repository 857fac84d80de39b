package seats

// SeatStats are the aggregate capacity counters of one event.
type SeatStats struct {
	EventID   string `json:"event_id"`
	Total     int    `json:"total"`
	Available int    `json:"available"`
	Sold      int    `json:"sold"`
}

// SeatInfo describes one occupied seat for gate staff views.
type SeatInfo struct {
	SeatNumber   string `json:"seat_number"`
	TicketNumber string `json:"ticket_number"`
	AttendeeName string `json:"attendee_name"`
	Status       string `json:"status"`
}
