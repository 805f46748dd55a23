package usecase

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/model"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/ports/repository"
)

// BookingUseCase issues tickets. It is the producer side of the validation
// core: codes are unique at creation time and tickets start unused.
type BookingUseCase struct {
	tickets repository.TicketRepository
	tiers   repository.TierRepository
	events  repository.EventRepository
	tm      repository.TransactionManager
	log     *zerolog.Logger
	now     func() time.Time
}

func NewBookingUseCase(
	tickets repository.TicketRepository,
	tiers repository.TierRepository,
	events repository.EventRepository,
	tm repository.TransactionManager,
	logger *zerolog.Logger,
) *BookingUseCase {
	return &BookingUseCase{
		tickets: tickets,
		tiers:   tiers,
		events:  events,
		tm:      tm,
		log:     logger,
		now:     time.Now,
	}
}

type BookTicketInput struct {
	EventID       string
	TierID        string
	AttendeeName  string
	AttendeeEmail string
	AttendeePhone *string
	BuyerID       *string
}

// Book reserves one seat in the tier and issues the ticket in a single
// transaction. The tier counter is bumped by a guarded update, so the last
// seat cannot be sold twice; losing that update aborts with ErrTierSoldOut
// and nothing is persisted.
func (uc *BookingUseCase) Book(ctx context.Context, in BookTicketInput) (*model.Ticket, error) {
	if in.EventID == "" || in.TierID == "" || in.AttendeeName == "" || in.AttendeeEmail == "" {
		return nil, domain.ErrInvalidArgument
	}

	tier, err := uc.tiers.FindByID(ctx, nil, in.TierID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrTierNotFound
		}
		return nil, err
	}
	if tier.EventID != in.EventID || !tier.IsActive {
		return nil, domain.ErrInvalidArgument
	}

	now := uc.now()
	status := model.PaymentStatusPaid
	if tier.Price == 0 {
		status = model.PaymentStatusFree
	}
	ticket := &model.Ticket{
		Code:          model.NewTicketCode(now),
		TicketType:    "event",
		EventID:       &in.EventID,
		TierID:        &in.TierID,
		BuyerID:       in.BuyerID,
		AttendeeName:  &in.AttendeeName,
		AttendeeEmail: &in.AttendeeEmail,
		AttendeePhone: in.AttendeePhone,
		PaymentStatus: status,
		IsUsed:        false,
		CreatedAt:     now,
	}

	err = uc.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		ok, err := uc.tiers.IncrementSold(ctx, tx, in.TierID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrTierSoldOut
		}
		return uc.tickets.Save(ctx, tx, ticket)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("ticket", ticket.Code).Str("event", in.EventID).Str("tier", in.TierID).Msg("ticket booked")
	return ticket, nil
}

func (uc *BookingUseCase) ListByBuyer(ctx context.Context, buyerID string) ([]*model.Ticket, error) {
	if buyerID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return uc.tickets.ListByBuyer(ctx, nil, buyerID)
}

func (uc *BookingUseCase) ListByEvent(ctx context.Context, eventID string) ([]*model.Ticket, error) {
	if eventID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return uc.tickets.ListByEvent(ctx, nil, eventID)
}
