// Package scheduler runs the periodic maintenance jobs of the API.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/yukikurage/procms-api/internal/logging"
)

// Schedules use six fields, seconds first.
const (
	PruneDragsSpec    = "0 * * * * *"
	PendingDigestSpec = "0 0 * * * *"
)

// DragPruner discards expired drag gestures.
type DragPruner interface {
	PruneDrags() int
}

// PendingCounter counts comments awaiting moderation.
type PendingCounter interface {
	PendingCount() (int64, error)
}

type Scheduler struct {
	cron     *cron.Cron
	drags    DragPruner
	comments PendingCounter
}

// New registers the jobs without starting them.
func New(drags DragPruner, comments PendingCounter) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		drags:    drags,
		comments: comments,
	}

	if _, err := s.cron.AddFunc(PruneDragsSpec, s.pruneDrags); err != nil {
		return nil, fmt.Errorf("failed to schedule drag pruning: %w", err)
	}
	if _, err := s.cron.AddFunc(PendingDigestSpec, s.pendingDigest); err != nil {
		return nil, fmt.Errorf("failed to schedule pending digest: %w", err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logging.Logger.WithField("jobs", len(s.cron.Entries())).Info("scheduler started")
}

// Stop prevents new runs and returns a context that is done once running jobs
// have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) pruneDrags() {
	if n := s.drags.PruneDrags(); n > 0 {
		logging.Logger.WithField("pruned", n).Info("expired drags pruned")
	}
}

func (s *Scheduler) pendingDigest() {
	count, err := s.comments.PendingCount()
	if err != nil {
		logging.Logger.WithError(err).Error("pending comment digest failed")
		return
	}
	logging.Logger.WithField("pending", count).Info("comments awaiting moderation")
}
