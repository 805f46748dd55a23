package repository

import (
	"context"

	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/model"
)

type TierRepository interface {
	Save(ctx context.Context, tx Tx, t *model.TicketTier) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.TicketTier, error)
	ListByEvent(ctx context.Context, tx Tx, eventID string) ([]*model.TicketTier, error)
	// IncrementSold bumps tickets_sold under the capacity guard
	// (tickets_sold < capacity, or no capacity set). Returns false when the
	// tier is sold out and no row changed.
	IncrementSold(ctx context.Context, tx Tx, tierID string) (bool, error)
}
