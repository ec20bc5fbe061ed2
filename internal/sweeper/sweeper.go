package sweeper

import (
	"context"
	"log"
	"time"

	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/config"
	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/store"
)

// Service drives the time-based active -> completed transition: once a
// booking's end time has passed, nothing in the request path touches it
// again, so a background loop flips it over.
type Service struct {
	cfg   *config.Config
	store store.Store
	now   func() time.Time
}

// NewService creates a sweeper. now is injectable for tests and defaults to
// time.Now.
func NewService(cfg *config.Config, s store.Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{cfg: cfg, store: s, now: now}
}

// Run sweeps on the configured interval until the context is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Sweeper.Enabled {
		log.Println("Sweeper is disabled. Not starting.")
		return
	}
	log.Println("Starting completion sweeper...")

	ticker := time.NewTicker(s.cfg.Sweeper.Interval)
	defer ticker.Stop()

	s.SweepOnce(ctx)
	for {
		select {
		case <-ticker.C:
			s.SweepOnce(ctx)
		case <-ctx.Done():
			log.Println("Sweeper stopping.")
			return
		}
	}
}

// SweepOnce completes every active booking whose interval has elapsed.
func (s *Service) SweepOnce(ctx context.Context) {
	n, err := s.store.CompleteElapsed(ctx, s.now())
	if err != nil {
		log.Printf("Sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Sweep completed %d elapsed bookings", n)
	}
}
