package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"slotledger/internal/domain/schedule"
	"slotledger/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AvailabilityCache caches computed day views in Redis under a versioned key.
// Invalidation bumps the (resource, day) version counter instead of scanning
// for keys, so stale entries simply age out via TTL.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	resourceID, serviceID, subjectID uuid.UUID,
	day time.Time,
) (*queries.AvailabilityView, bool, error) {
	ver, err := c.version(ctx, resourceID, day)
	if err != nil {
		return nil, false, err
	}

	raw, err := c.client.Get(ctx, c.viewKey(resourceID, serviceID, subjectID, day, ver)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var view queries.AvailabilityView
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, false, err
	}
	return &view, true, nil
}

func (c *AvailabilityCache) Set(ctx context.Context, subjectID uuid.UUID, view *queries.AvailabilityView) error {
	ver, err := c.version(ctx, view.ResourceID, view.Day)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.viewKey(view.ResourceID, view.ServiceID, subjectID, view.Day, ver), raw, c.ttl).Err()
}

// Invalidate bumps the version for every cached view of the resource's day.
func (c *AvailabilityCache) Invalidate(ctx context.Context, resourceID uuid.UUID, day time.Time) error {
	key := c.versionKey(resourceID, day)
	if err := c.client.Incr(ctx, key).Err(); err != nil {
		return err
	}
	// Version keys outlive view entries so concurrent readers never see a
	// reset counter while views for it still exist.
	return c.client.Expire(ctx, key, 24*time.Hour).Err()
}

func (c *AvailabilityCache) version(ctx context.Context, resourceID uuid.UUID, day time.Time) (int64, error) {
	ver, err := c.client.Get(ctx, c.versionKey(resourceID, day)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return ver, err
}

func (c *AvailabilityCache) versionKey(resourceID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("availability:ver:%s:%s", resourceID, schedule.StartOfDay(day).Format("2006-01-02"))
}

func (c *AvailabilityCache) viewKey(resourceID, serviceID, subjectID uuid.UUID, day time.Time, ver int64) string {
	return fmt.Sprintf("availability:view:%s:%s:%s:%s:v%d",
		resourceID, serviceID, subjectID, schedule.StartOfDay(day).Format("2006-01-02"), ver)
}
