//go:build !integration

package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/model"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/ports/repository"
	red "github.com/Shadolnow/gatescan-pass-6f6688ad/internal/infra/redis"
)

func TestEventRepoCacheDecorator(t *testing.T) {
	ctx := context.Background()
	event := &model.Event{ID: "ev-123", Title: "Winter Gala", Status: model.EventStatusPublished}
	eventJSON, _ := json.Marshal(event)

	t.Run("FindByID should return from cache on hit", func(t *testing.T) {
		mockRedis := &mockRedisClient{
			GetFunc: func(ctx context.Context, key string) (string, error) {
				return string(eventJSON), nil
			},
		}
		innerRepoCalled := false
		mockInnerRepo := &mockInnerEventRepo{
			FindByIDFunc: func(ctx context.Context, tx repository.Tx, id string) (*model.Event, error) {
				innerRepoCalled = true
				return nil, nil
			},
		}

		decorator := NewEventRepoCacheDecorator(mockInnerRepo, mockRedis, time.Hour)

		result, err := decorator.FindByID(ctx, nil, "ev-123")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if innerRepoCalled {
			t.Error("inner repository should not be called on a cache hit")
		}
		if result == nil || result.ID != "ev-123" {
			t.Error("did not return the correct event from cache")
		}
	})

	t.Run("FindByID should fall through and populate on miss", func(t *testing.T) {
		var setKey string
		mockRedis := &mockRedisClient{
			GetFunc: func(ctx context.Context, key string) (string, error) {
				return "", red.Nil
			},
			SetFunc: func(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
				setKey = key
				return nil
			},
		}
		mockInnerRepo := &mockInnerEventRepo{
			FindByIDFunc: func(ctx context.Context, tx repository.Tx, id string) (*model.Event, error) {
				return event, nil
			},
		}

		decorator := NewEventRepoCacheDecorator(mockInnerRepo, mockRedis, time.Hour)

		result, err := decorator.FindByID(ctx, nil, "ev-123")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result == nil || result.Title != "Winter Gala" {
			t.Error("did not return the event from the inner repository")
		}
		if setKey != "event:ev-123" {
			t.Errorf("cache populated under key %q", setKey)
		}
	})

	t.Run("Save should invalidate the cache", func(t *testing.T) {
		var deletedKeys []string
		mockRedis := &mockRedisClient{
			DelFunc: func(ctx context.Context, keys ...string) error {
				deletedKeys = append(deletedKeys, keys...)
				return nil
			},
		}
		mockInnerRepo := &mockInnerEventRepo{
			SaveFunc: func(ctx context.Context, tx repository.Tx, ev *model.Event) error {
				return nil
			},
		}

		decorator := NewEventRepoCacheDecorator(mockInnerRepo, mockRedis, time.Hour)

		if err := decorator.Save(ctx, nil, event); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(deletedKeys) != 2 {
			t.Fatalf("expected 2 keys to be deleted, but got %d", len(deletedKeys))
		}
	})

	t.Run("ListByOrganizer should bypass the cache", func(t *testing.T) {
		innerCalled := false
		mockInnerRepo := &mockInnerEventRepo{
			ListByOrganizerFunc: func(ctx context.Context, tx repository.Tx, organizerID string) ([]*model.Event, error) {
				innerCalled = true
				return []*model.Event{event}, nil
			},
		}

		decorator := NewEventRepoCacheDecorator(mockInnerRepo, &mockRedisClient{}, time.Hour)

		evs, err := decorator.ListByOrganizer(ctx, nil, "org-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !innerCalled || len(evs) != 1 {
			t.Error("organizer listing must always hit the inner repository")
		}
	})
}
