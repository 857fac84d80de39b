package tickets

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ticketNumberPattern = regexp.MustCompile(`^EVT-\d{8}-\d{5}$`)

func TestGenerateTicketNumberFormat(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	for i := 0; i < 50; i++ {
		number, err := GenerateTicketNumber(now)
		require.NoError(t, err)
		assert.Regexp(t, ticketNumberPattern, number)
		assert.Contains(t, number, "EVT-20250615-")
	}
}

func TestGenerateTicketNumberUsesUTCDate(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2025, 6, 15, 23, 30, 0, 0, loc)

	number, err := GenerateTicketNumber(now)
	require.NoError(t, err)
	assert.Contains(t, number, "EVT-20250616-")
}

type stubNumberChecker struct {
	taken   map[string]bool
	takeAll bool
	calls   int
}

func (s *stubNumberChecker) ExistsByNumber(ctx context.Context, ticketNumber string) (bool, error) {
	s.calls++
	if s.takeAll {
		return true, nil
	}
	return s.taken[ticketNumber], nil
}

func TestNewUniqueTicketNumber(t *testing.T) {
	checker := &stubNumberChecker{}

	number, err := NewUniqueTicketNumber(context.Background(), checker, time.Now())
	require.NoError(t, err)
	assert.Regexp(t, ticketNumberPattern, number)
	assert.Equal(t, 1, checker.calls)
}

func TestNewUniqueTicketNumberExhaustsAfterRetry(t *testing.T) {
	checker := &stubNumberChecker{takeAll: true}

	_, err := NewUniqueTicketNumber(context.Background(), checker, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTicketNumberExhausted)
	// One generation plus exactly one bounded retry.
	assert.Equal(t, 2, checker.calls)
}

type errNumberChecker struct{}

func (errNumberChecker) ExistsByNumber(ctx context.Context, ticketNumber string) (bool, error) {
	return false, fmt.Errorf("connection refused")
}

func TestNewUniqueTicketNumberPropagatesCheckerError(t *testing.T) {
	_, err := NewUniqueTicketNumber(context.Background(), errNumberChecker{}, time.Now())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTicketNumberExhausted)
}
