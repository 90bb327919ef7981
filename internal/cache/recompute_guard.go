package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RecomputeGuard serializes recompute triggers per project. The scoring
// engine itself takes no locks; this guard sits at the service edge so that
// at most one recompute per project is in flight at a time. The TTL bounds
// how long a crashed run can block the next one.
type RecomputeGuard interface {
	Acquire(ctx context.Context, projectID string) (bool, error)
	Release(ctx context.Context, projectID string) error
}

type recomputeGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRecomputeGuard creates a new recompute guard
func NewRecomputeGuard(client *redis.Client, ttl time.Duration) RecomputeGuard {
	return &recomputeGuard{
		client: client,
		ttl:    ttl,
	}
}

func (g *recomputeGuard) key(projectID string) string {
	return fmt.Sprintf("recompute:%s:lock", projectID)
}

func (g *recomputeGuard) Acquire(ctx context.Context, projectID string) (bool, error) {
	return g.client.SetNX(ctx, g.key(projectID), 1, g.ttl).Result()
}

func (g *recomputeGuard) Release(ctx context.Context, projectID string) error {
	return g.client.Del(ctx, g.key(projectID)).Err()
}
