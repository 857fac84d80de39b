package credentials

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() Payload {
	return Payload{
		TicketID:     uuid.New(),
		TicketNumber: "EVT-20250615-04821",
		EventID:      uuid.New(),
		SeatNumber:   "A12",
		AttendeeName: "Jordan Reyes",
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payload := validPayload()

	encoded, err := Encode(payload)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, payload, *decoded)
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"not json", "EVT-20250615-04821"},
		{"truncated json", `{"ticket_id": "`},
		{"wrong shape", `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			require.Error(t, err)

			var malformed *MalformedCredentialError
			assert.ErrorAs(t, err, &malformed)
		})
	}
}

func TestDecodeRejectsMissingIdentityFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Payload)
	}{
		{"missing ticket_id", func(p *Payload) { p.TicketID = uuid.Nil }},
		{"missing ticket_number", func(p *Payload) { p.TicketNumber = "" }},
		{"missing event_id", func(p *Payload) { p.EventID = uuid.Nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validPayload()
			tt.mutate(&payload)

			raw, err := json.Marshal(payload)
			require.NoError(t, err)

			_, err = Decode(string(raw))
			require.Error(t, err)

			var malformed *MalformedCredentialError
			assert.ErrorAs(t, err, &malformed)
		})
	}
}

func TestDecodeToleratesMissingSeatNumber(t *testing.T) {
	// Only the identity fields are required to locate the ticket; the seat
	// is verified against the stored row at the gate.
	payload := validPayload()
	payload.SeatNumber = ""

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	decoded, err := Decode(string(raw))
	require.NoError(t, err)
	assert.Empty(t, decoded.SeatNumber)
}

func TestEncodeRequiresFullPayload(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Payload)
	}{
		{"missing ticket_id", func(p *Payload) { p.TicketID = uuid.Nil }},
		{"missing ticket_number", func(p *Payload) { p.TicketNumber = "" }},
		{"missing event_id", func(p *Payload) { p.EventID = uuid.Nil }},
		{"missing seat_number", func(p *Payload) { p.SeatNumber = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validPayload()
			tt.mutate(&payload)

			_, err := Encode(payload)
			require.Error(t, err)

			var malformed *MalformedCredentialError
			assert.ErrorAs(t, err, &malformed)
		})
	}
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	payload := validPayload()
	raw := `{"ticket_id":"` + payload.TicketID.String() + `",` +
		`"ticket_number":"` + payload.TicketNumber + `",` +
		`"event_id":"` + payload.EventID.String() + `",` +
		`"seat_number":"` + payload.SeatNumber + `",` +
		`"attendee_name":"` + payload.AttendeeName + `",` +
		`"extra_field":"ignored"}`

	decoded, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, payload, *decoded)
}
