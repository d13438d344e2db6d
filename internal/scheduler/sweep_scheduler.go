package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mdanyllo/UpaonServicesBackPrototipo/domain"
)

// SweepScheduler triggers the daily entitlement sweep at a fixed local
// time-of-day. Runs are stateless functions of now and stored state; a
// missed trigger is simply skipped.
type SweepScheduler struct {
	entitlementSvc domain.EntitlementService
	cron           *cron.Cron
	spec           string
	runTimeout     time.Duration
}

// NewSweepScheduler creates a scheduler from a cron spec such as "0 3 * * *".
func NewSweepScheduler(entitlementSvc domain.EntitlementService, spec string, loc *time.Location) *SweepScheduler {
	return &SweepScheduler{
		entitlementSvc: entitlementSvc,
		cron:           cron.New(cron.WithLocation(loc)),
		spec:           spec,
		runTimeout:     10 * time.Minute,
	}
}

// Start registers the job and begins the timer. The cron runner serializes
// nothing by itself; RunOnce is safe to overlap with request traffic.
func (s *SweepScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.RunOnce(time.Now())
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the timer, waiting for an in-flight run to finish.
func (s *SweepScheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce performs one sweep: warn providers whose windows close soon, then
// expire the windows already past. Failures in the first phase never block
// the second.
func (s *SweepScheduler) RunOnce(now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	notified, err := s.entitlementSvc.NotifyUpcomingExpirations(ctx, now)
	if err != nil {
		log.Printf("SWEEP_NOTIFY_ERROR: %v", err)
	}

	swept, err := s.entitlementSvc.SweepExpirations(ctx, now)
	if err != nil {
		log.Printf("SWEEP_EXPIRE_ERROR: %v", err)
		return
	}

	sent, failed := 0, 0
	if notified != nil {
		sent, failed = notified.Notified, notified.NotifyFailed
	}
	log.Printf("SWEEP_RUN: notified=%d notify_failed=%d deactivated=%d unfeatured=%d",
		sent, failed, swept.Deactivated, swept.Unfeatured)
}
