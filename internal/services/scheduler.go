package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"rolereader/resume-matcher/internal/repositories"
)

const unindexedBatchSize = 50

// IndexScheduler periodically re-enqueues comparisons that were never
// indexed, covering jobs dropped by a full queue or a restart.
type IndexScheduler struct {
	cron     *cron.Cron
	repo     repositories.ComparisonRepository
	queue    IndexQueue
	interval time.Duration
}

func NewIndexScheduler(repo repositories.ComparisonRepository, queue IndexQueue, interval time.Duration) *IndexScheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &IndexScheduler{
		cron:     cron.New(),
		repo:     repo,
		queue:    queue,
		interval: interval,
	}
}

func (s *IndexScheduler) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule index sweep: %w", err)
	}

	s.cron.Start()
	log.Printf("⏰ Index scheduler running every %s\n", s.interval)

	go s.RunOnce(ctx)
	return nil
}

func (s *IndexScheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("⏰ Index scheduler stopped")
}

// RunOnce enqueues one batch of unindexed comparisons.
func (s *IndexScheduler) RunOnce(ctx context.Context) int {
	pending, err := s.repo.FindUnindexed(ctx, unindexedBatchSize)
	if err != nil {
		log.Printf("⚠️  Failed to fetch unindexed comparisons: %v\n", err)
		return 0
	}

	if len(pending) > 0 {
		log.Printf("📋 Found %d unindexed comparisons\n", len(pending))
	}
	for _, c := range pending {
		s.queue.EnqueueJob(IndexJob{ComparisonID: c.ID})
	}
	return len(pending)
}
