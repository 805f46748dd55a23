//go:build !integration

package postgres

import (
	"context"
	"time"

	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/model"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/ports/repository"
	red "github.com/Shadolnow/gatescan-pass-6f6688ad/internal/infra/redis"
)

// --- Mocks for Cache Decorator Tests ---

// mockInnerEventRepo mocks the database repository that the event decorator wraps.
type mockInnerEventRepo struct {
	SaveFunc            func(ctx context.Context, tx repository.Tx, ev *model.Event) error
	FindByIDFunc        func(ctx context.Context, tx repository.Tx, id string) (*model.Event, error)
	ListPublishedFunc   func(ctx context.Context, tx repository.Tx) ([]*model.Event, error)
	ListByOrganizerFunc func(ctx context.Context, tx repository.Tx, organizerID string) ([]*model.Event, error)
	UpdateStatusFunc    func(ctx context.Context, tx repository.Tx, id string, status model.EventStatus) error
}

func (m *mockInnerEventRepo) Save(ctx context.Context, tx repository.Tx, ev *model.Event) error {
	return m.SaveFunc(ctx, tx, ev)
}
func (m *mockInnerEventRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Event, error) {
	return m.FindByIDFunc(ctx, tx, id)
}
func (m *mockInnerEventRepo) ListPublished(ctx context.Context, tx repository.Tx) ([]*model.Event, error) {
	return m.ListPublishedFunc(ctx, tx)
}
func (m *mockInnerEventRepo) ListByOrganizer(ctx context.Context, tx repository.Tx, organizerID string) ([]*model.Event, error) {
	return m.ListByOrganizerFunc(ctx, tx, organizerID)
}
func (m *mockInnerEventRepo) UpdateStatus(ctx context.Context, tx repository.Tx, id string, status model.EventStatus) error {
	return m.UpdateStatusFunc(ctx, tx, id, status)
}

// mockRedisClient mocks our Redis client wrapper.
type mockRedisClient struct {
	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	DelFunc    func(ctx context.Context, keys ...string) error
	PingFunc   func(ctx context.Context) error
	IncrFunc   func(ctx context.Context, key string) (int64, error)
	ExpireFunc func(ctx context.Context, key string, expiration time.Duration) error
	CloseFunc  func() error
}

var _ red.RedisClient = &mockRedisClient{}

func (m *mockRedisClient) Get(ctx context.Context, key string) (string, error) {
	return m.GetFunc(ctx, key)
}
func (m *mockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return m.SetFunc(ctx, key, value, expiration)
}
func (m *mockRedisClient) Del(ctx context.Context, keys ...string) error {
	return m.DelFunc(ctx, keys...)
}
func (m *mockRedisClient) Ping(ctx context.Context) error { return m.PingFunc(ctx) }
func (m *mockRedisClient) Incr(ctx context.Context, key string) (int64, error) {
	return m.IncrFunc(ctx, key)
}
func (m *mockRedisClient) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return m.ExpireFunc(ctx, key, expiration)
}
func (m *mockRedisClient) Close() error { return m.CloseFunc() }
