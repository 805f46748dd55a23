package repository

import (
	"context"
	"time"

	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/model"
)

// TicketWithContext bundles a ticket with its (optional) owning event and
// tier, as produced by the joined lookup the validation path uses.
type TicketWithContext struct {
	Ticket *model.Ticket
	Event  *model.Event
	Tier   *model.TicketTier
}

type TicketRepository interface {
	Save(ctx context.Context, tx Tx, t *model.Ticket) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Ticket, error)
	// FindByCode resolves a ticket by exact code match, joined with event and
	// tier display fields. Returns domain.ErrNotFound when no ticket matches.
	FindByCode(ctx context.Context, tx Tx, code string) (*TicketWithContext, error)
	// ConditionalMarkUsed flips is_used under an is_used=FALSE guard and
	// reports whether THIS call performed the transition. Among concurrent
	// callers racing on one ticket exactly one receives true.
	ConditionalMarkUsed(ctx context.Context, tx Tx, ticketID string, at time.Time) (bool, error)
	ListByBuyer(ctx context.Context, tx Tx, buyerID string) ([]*model.Ticket, error)
	ListByEvent(ctx context.Context, tx Tx, eventID string) ([]*model.Ticket, error)
	// CountByEvent returns sold and checked-in totals for analytics.
	CountByEvent(ctx context.Context, tx Tx, eventID string) (sold int, checkedIn int, err error)
}
