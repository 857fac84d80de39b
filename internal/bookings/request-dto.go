package bookings

// BookTicketRequest is the payload for booking one seat on one event.
// Attendee fields are optional overrides; unset fields default from the
// booking user's profile.
type BookTicketRequest struct {
	EventID       string  `json:"event_id" binding:"required,uuid"`
	SeatNumber    string  `json:"seat_number" binding:"required,min=1,max=10"`
	PaymentMethod string  `json:"payment_method" binding:"required,payment_method"`
	AttendeeName  string  `json:"attendee_name" binding:"omitempty,min=2,max=255"`
	AttendeeEmail string  `json:"attendee_email" binding:"omitempty,email"`
	AttendeePhone string  `json:"attendee_phone" binding:"omitempty,max=20"`
	AttendeeAge   *int    `json:"attendee_age" binding:"omitempty,min=1,max=120"`
	AttendeeGender *string `json:"attendee_gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
}

// ListTicketsQuery paginates a user's ticket history.
type ListTicketsQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}
