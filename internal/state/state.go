package state

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RunState is what the tracker remembers about a supplier's last
// successful run.
type RunState struct {
	FinishedAt   time.Time
	FeedChecksum string
}

// RunStateManager records the last successful run per supplier. It exists
// for observability only: a feed identical to the previous run is worth a
// warning, but every run still processes the full snapshot.
type RunStateManager interface {
	GetLastRun(ctx context.Context, supplier string) (*RunState, error)
	SetLastRun(ctx context.Context, supplier string, run RunState) error
}

type redisRunStateManager struct {
	redisClient *redis.Client
	keyPrefix   string
}

func NewRedisRunStateManager(redisClient *redis.Client) RunStateManager {
	return &redisRunStateManager{
		redisClient: redisClient,
		keyPrefix:   "stockfeed:lastrun:",
	}
}

func (s *redisRunStateManager) GetLastRun(ctx context.Context, supplier string) (*RunState, error) {
	key := s.keyPrefix + supplier
	values, err := s.redisClient.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get last run for supplier %s: %w", supplier, err)
	}
	if len(values) == 0 {
		return nil, nil // No run recorded yet
	}

	finishedAt, err := time.Parse(time.RFC3339, values["finished_at"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse last run timestamp for supplier %s: %w", supplier, err)
	}

	return &RunState{
		FinishedAt:   finishedAt,
		FeedChecksum: values["feed_checksum"],
	}, nil
}

func (s *redisRunStateManager) SetLastRun(ctx context.Context, supplier string, run RunState) error {
	key := s.keyPrefix + supplier
	err := s.redisClient.HSet(ctx, key,
		"finished_at", run.FinishedAt.Format(time.RFC3339),
		"feed_checksum", run.FeedChecksum,
	).Err()
	if err != nil {
		return fmt.Errorf("failed to set last run for supplier %s: %w", supplier, err)
	}
	return nil
}

// NewNoopRunStateManager returns the tracker used when redis is not
// configured.
func NewNoopRunStateManager() RunStateManager {
	return &noopRunStateManager{}
}

type noopRunStateManager struct{}

func (s *noopRunStateManager) GetLastRun(_ context.Context, _ string) (*RunState, error) {
	return nil, nil
}

func (s *noopRunStateManager) SetLastRun(_ context.Context, _ string, _ RunState) error {
	return nil
}
