package tickets

import "time"

// TicketResponse is the public view of a ticket.
type TicketResponse struct {
	ID            string     `json:"id"`
	TicketNumber  string     `json:"ticket_number"`
	EventID       string     `json:"event_id"`
	EventName     string     `json:"event_name,omitempty"`
	SeatNumber    string     `json:"seat_number"`
	AttendeeName  string     `json:"attendee_name"`
	AttendeeEmail string     `json:"attendee_email"`
	OriginalPrice float64    `json:"original_price"`
	FinalPrice    float64    `json:"final_price"`
	Discount      float64    `json:"discount"`
	Currency      string     `json:"currency"`
	PaymentMethod string     `json:"payment_method"`
	PaymentStatus string     `json:"payment_status"`
	TransactionID string     `json:"transaction_id,omitempty"`
	Status        string     `json:"status"`
	IsCheckedIn   bool       `json:"is_checked_in"`
	CheckedInAt   *time.Time `json:"checked_in_at,omitempty"`
	Gate          string     `json:"gate,omitempty"`
	PurchaseDate  time.Time  `json:"purchase_date"`
	ValidUntil    time.Time  `json:"valid_until"`
}

func (t *Ticket) ToResponse() TicketResponse {
	resp := TicketResponse{
		ID:            t.ID.String(),
		TicketNumber:  t.TicketNumber,
		EventID:       t.EventID.String(),
		SeatNumber:    t.SeatNumber,
		AttendeeName:  t.AttendeeName,
		AttendeeEmail: t.AttendeeEmail,
		OriginalPrice: t.OriginalPrice,
		FinalPrice:    t.FinalPrice,
		Discount:      t.Discount,
		Currency:      t.Currency,
		PaymentMethod: t.PaymentMethod,
		PaymentStatus: string(t.PaymentStatus),
		TransactionID: t.TransactionID,
		Status:        string(t.Status),
		IsCheckedIn:   t.IsCheckedIn,
		CheckedInAt:   t.CheckedInAt,
		Gate:          t.Gate,
		PurchaseDate:  t.PurchaseDate,
		ValidUntil:    t.ValidUntil,
	}
	if t.Event != nil {
		resp.EventName = t.Event.Name
	}
	return resp
}
