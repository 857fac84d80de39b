package tickets

import (
	"context"
	"log"
	"time"

	"ticketly/pkg/logger"
)

// SweepProcessor periodically expires ACTIVE tickets whose validity window
// has passed.
type SweepProcessor struct {
	repo   Repository
	config *SweepConfig
	done   chan struct{}
}

// SweepConfig contains configuration for the expiry sweep.
type SweepConfig struct {
	Interval time.Duration
}

// DefaultSweepConfig returns default sweep configuration.
func DefaultSweepConfig() *SweepConfig {
	return &SweepConfig{
		Interval: 5 * time.Minute,
	}
}

// NewSweepProcessor creates a new sweep processor.
func NewSweepProcessor(repo Repository, config *SweepConfig) *SweepProcessor {
	if config == nil {
		config = DefaultSweepConfig()
	}

	return &SweepProcessor{
		repo:   repo,
		config: config,
		done:   make(chan struct{}),
	}
}

// Start starts the background expiry sweep.
func (sp *SweepProcessor) Start(ctx context.Context) {
	log.Println("Starting ticket expiry sweep...")
	go sp.run(ctx)
}

// Stop stops the background sweep.
func (sp *SweepProcessor) Stop() {
	log.Println("Stopping ticket expiry sweep...")
	close(sp.done)
}

func (sp *SweepProcessor) run(ctx context.Context) {
	ticker := time.NewTicker(sp.config.Interval)
	defer ticker.Stop()

	log.Printf("Started ticket expiry sweep with %v interval", sp.config.Interval)

	for {
		select {
		case <-ticker.C:
			sp.sweep(ctx)
		case <-sp.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (sp *SweepProcessor) sweep(ctx context.Context) {
	expired, err := sp.repo.ExpireOverdue(ctx, time.Now())
	if err != nil {
		log.Printf("Error expiring overdue tickets: %v", err)
		return
	}

	if expired > 0 {
		logger.LogTicketsExpired(expired)
	}
}
