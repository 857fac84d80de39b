package tickets

// Status is the lifecycle state of a ticket. ACTIVE is the only non-terminal
// state; USED, CANCELLED and EXPIRED are terminal.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusUsed      Status = "USED"
	StatusCancelled Status = "CANCELLED"
	StatusExpired   Status = "EXPIRED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusUsed, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is permitted from s.
func (s Status) IsTerminal() bool {
	return s == StatusUsed || s == StatusCancelled || s == StatusExpired
}

// CanTransitionTo reports whether the transition s -> target is permitted.
// Only ACTIVE tickets move, and only into a terminal state.
func (s Status) CanTransitionTo(target Status) bool {
	if s != StatusActive {
		return false
	}
	switch target {
	case StatusUsed, StatusCancelled, StatusExpired:
		return true
	}
	return false
}
