package tickets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusActive.IsTerminal())
	assert.True(t, StatusUsed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusExpired.IsTerminal())
}

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"active to used", StatusActive, StatusUsed, true},
		{"active to cancelled", StatusActive, StatusCancelled, true},
		{"active to expired", StatusActive, StatusExpired, true},
		{"active to active", StatusActive, StatusActive, false},
		{"used to cancelled", StatusUsed, StatusCancelled, false},
		{"used to active", StatusUsed, StatusActive, false},
		{"cancelled to used", StatusCancelled, StatusUsed, false},
		{"cancelled to active", StatusCancelled, StatusActive, false},
		{"expired to used", StatusExpired, StatusUsed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusActive.IsValid())
	assert.True(t, StatusUsed.IsValid())
	assert.True(t, StatusCancelled.IsValid())
	assert.True(t, StatusExpired.IsValid())
	assert.False(t, Status("CONFIRMED").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestOccupiesSeat(t *testing.T) {
	ticket := &Ticket{Status: StatusActive}
	assert.True(t, ticket.OccupiesSeat())

	ticket.Status = StatusUsed
	assert.True(t, ticket.OccupiesSeat())

	ticket.Status = StatusCancelled
	assert.False(t, ticket.OccupiesSeat())

	ticket.Status = StatusExpired
	assert.False(t, ticket.OccupiesSeat())
}
