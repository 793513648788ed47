package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pickemhq/pickem-api/internal/platform/logging"
)

type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(_ context.Context, _ string, _ any, _ time.Duration, _ string) error {
	return nil
}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

type seasonSyncer interface {
	SyncSeason(ctx context.Context) (SyncSummary, error)
}

// SyncScheduler drives periodic result syncs. With a queue configured it
// enqueues the internal sync job so the scheduled run arrives as an HTTP
// callback; without one it calls the syncer in process.
type SyncScheduler struct {
	syncer   seasonSyncer
	queue    JobQueue
	useQueue bool
	interval time.Duration
	logger   *logging.Logger
	now      func() time.Time
}

var dedupUnsafeCharRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func NewSyncScheduler(syncer seasonSyncer, queue JobQueue, useQueue bool, interval time.Duration, logger *logging.Logger) *SyncScheduler {
	if queue == nil {
		queue = NewNoopJobQueue()
		useQueue = false
	}
	if interval <= 0 {
		interval = 84 * time.Hour
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &SyncScheduler{
		syncer:   syncer,
		queue:    queue,
		useQueue: useQueue,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Run blocks until ctx is cancelled, firing one sync per interval. The first
// tick fires immediately so a fresh deploy does not wait a full interval.
func (s *SyncScheduler) Run(ctx context.Context) {
	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("results sync scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *SyncScheduler) tick(ctx context.Context) {
	if s.useQueue {
		if err := s.enqueueSync(ctx); err != nil {
			s.logger.WarnContext(ctx, "enqueue results sync failed", "error", err)
		}
		return
	}

	if s.syncer == nil {
		return
	}
	summary, err := s.syncer.SyncSeason(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "scheduled results sync failed", "error", err)
		return
	}
	s.logger.InfoContext(ctx, "scheduled results sync completed",
		"season", summary.Season,
		"weeks_synced", summary.WeeksSynced,
		"games_upserted", summary.GamesUpserted,
		"picks_scored", summary.PicksScored,
		"shared", summary.Shared,
	)
}

func (s *SyncScheduler) enqueueSync(ctx context.Context) error {
	now := s.now().UTC()
	dedupID := dedupKey("sync-results", now, s.interval)
	payload := map[string]any{
		"dispatch_id": dedupID,
	}
	if err := s.queue.Enqueue(ctx, "/internal/jobs/sync-results", payload, 0, dedupID); err != nil {
		return fmt.Errorf("enqueue sync-results: %w", err)
	}
	return nil
}

func dedupKey(prefix string, at time.Time, bucket time.Duration) string {
	if bucket <= 0 {
		bucket = time.Minute
	}
	slot := at.UTC().Truncate(bucket).Format("20060102T150405Z")
	return sanitizeDedupSegment(prefix) + "-" + slot
}

func sanitizeDedupSegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return dedupUnsafeCharRegex.ReplaceAllString(value, "-")
}
