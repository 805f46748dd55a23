package repository

import (
	"context"

	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/model"
)

type EventRepository interface {
	Save(ctx context.Context, tx Tx, ev *model.Event) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Event, error)
	ListPublished(ctx context.Context, tx Tx) ([]*model.Event, error)
	ListByOrganizer(ctx context.Context, tx Tx, organizerID string) ([]*model.Event, error)
	UpdateStatus(ctx context.Context, tx Tx, id string, status model.EventStatus) error
}
