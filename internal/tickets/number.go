package tickets

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Ticket numbers are human-presentable and globally unique:
// EVT-YYYYMMDD-NNNNN with an 8-digit UTC date and a 5-digit zero-padded
// random suffix. Collisions are resolved by regenerating the suffix at most
// once; a second collision is treated as exhaustion, not silently retried.
const ticketNumberPrefix = "EVT"

// GenerateTicketNumber produces a candidate ticket number for the given
// instant. Uniqueness is checked by the caller against the store.
func GenerateTicketNumber(now time.Time) (string, error) {
	suffix, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return "", fmt.Errorf("failed to generate ticket number suffix: %w", err)
	}
	return fmt.Sprintf("%s-%s-%05d", ticketNumberPrefix, now.UTC().Format("20060102"), suffix.Int64()), nil
}

// NumberChecker answers whether a ticket number is already taken.
type NumberChecker interface {
	ExistsByNumber(ctx context.Context, ticketNumber string) (bool, error)
}

// NewUniqueTicketNumber generates a ticket number, verifying uniqueness via
// the checker with a single bounded regeneration. It is a pure orchestration
// helper and must not be called while holding the per-event row lock.
func NewUniqueTicketNumber(ctx context.Context, checker NumberChecker, now time.Time) (string, error) {
	for attempt := 0; attempt < 2; attempt++ {
		number, err := GenerateTicketNumber(now)
		if err != nil {
			return "", err
		}

		exists, err := checker.ExistsByNumber(ctx, number)
		if err != nil {
			return "", fmt.Errorf("failed to check ticket number uniqueness: %w", err)
		}
		if !exists {
			return number, nil
		}
	}
	return "", ErrTicketNumberExhausted
}
