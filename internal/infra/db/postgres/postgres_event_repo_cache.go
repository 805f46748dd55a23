package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/model"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/ports/repository"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/infra/metrics"
	red "github.com/Shadolnow/gatescan-pass-6f6688ad/internal/infra/redis"
)

var _ repository.EventRepository = (*eventRepoCacheDecorator)(nil)

// eventRepoCacheDecorator caches event reads in Redis. The public event
// listing and per-event lookups are read-heavy (every gate renders them) and
// tolerate TTL staleness; writes invalidate.
type eventRepoCacheDecorator struct {
	inner repository.EventRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewEventRepoCacheDecorator(inner repository.EventRepository, cache red.RedisClient, ttl time.Duration) repository.EventRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &eventRepoCacheDecorator{inner: inner, cache: cache, ttl: ttl}
}

func (d *eventRepoCacheDecorator) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Event, error) {
	key := fmt.Sprintf("event:%s", id)
	if val, err := d.cache.Get(ctx, key); err == nil {
		var ev model.Event
		if json.Unmarshal([]byte(val), &ev) == nil {
			metrics.IncCacheRequest("event", "hit")
			return &ev, nil
		}
	}

	metrics.IncCacheRequest("event", "miss")
	ev, err := d.inner.FindByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(ev); err == nil {
		_ = d.cache.Set(ctx, key, b, d.ttl)
	}
	return ev, nil
}

func (d *eventRepoCacheDecorator) ListPublished(ctx context.Context, tx repository.Tx) ([]*model.Event, error) {
	const key = "events:published"
	if val, err := d.cache.Get(ctx, key); err == nil {
		var evs []*model.Event
		if json.Unmarshal([]byte(val), &evs) == nil {
			metrics.IncCacheRequest("event_list", "hit")
			return evs, nil
		}
	}

	metrics.IncCacheRequest("event_list", "miss")
	evs, err := d.inner.ListPublished(ctx, tx)
	if err != nil {
		return nil, err
	}
	if len(evs) > 0 {
		if b, err := json.Marshal(evs); err == nil {
			_ = d.cache.Set(ctx, key, b, d.ttl)
		}
	}
	return evs, nil
}

func (d *eventRepoCacheDecorator) ListByOrganizer(ctx context.Context, tx repository.Tx, organizerID string) ([]*model.Event, error) {
	// Organizer dashboards want fresh numbers; skip the cache.
	return d.inner.ListByOrganizer(ctx, tx, organizerID)
}

func (d *eventRepoCacheDecorator) Save(ctx context.Context, tx repository.Tx, ev *model.Event) error {
	_ = d.cache.Del(ctx, fmt.Sprintf("event:%s", ev.ID), "events:published")
	return d.inner.Save(ctx, tx, ev)
}

func (d *eventRepoCacheDecorator) UpdateStatus(ctx context.Context, tx repository.Tx, id string, status model.EventStatus) error {
	_ = d.cache.Del(ctx, fmt.Sprintf("event:%s", id), "events:published")
	return d.inner.UpdateStatus(ctx, tx, id, status)
}
