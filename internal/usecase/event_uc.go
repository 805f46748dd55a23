package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/model"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/ports/repository"
)

// EventUseCase covers the organizer-facing CRUD around events and tiers.
// Thin by design: validation plus pass-through to the repositories.
type EventUseCase struct {
	events repository.EventRepository
	tiers  repository.TierRepository
	log    *zerolog.Logger
	now    func() time.Time
}

func NewEventUseCase(events repository.EventRepository, tiers repository.TierRepository, logger *zerolog.Logger) *EventUseCase {
	return &EventUseCase{events: events, tiers: tiers, log: logger, now: time.Now}
}

type CreateEventInput struct {
	OrganizerID string
	Title       string
	Description *string
	EventDate   time.Time
	EndDate     *time.Time
	Venue       string
	Address     *string
	City        *string
	IsFree      bool
	BasePrice   *int64
	Currency    string
	Capacity    *int
	Category    *string
}

func (uc *EventUseCase) Create(ctx context.Context, in CreateEventInput) (*model.Event, error) {
	if in.OrganizerID == "" || in.Title == "" || in.Venue == "" || in.EventDate.IsZero() {
		return nil, domain.ErrInvalidArgument
	}
	if in.Currency == "" {
		in.Currency = "USD"
	}
	now := uc.now()
	ev := &model.Event{
		OrganizerID: in.OrganizerID,
		Title:       in.Title,
		Description: in.Description,
		EventDate:   in.EventDate,
		EndDate:     in.EndDate,
		Venue:       in.Venue,
		Address:     in.Address,
		City:        in.City,
		IsFree:      in.IsFree,
		BasePrice:   in.BasePrice,
		Currency:    in.Currency,
		Capacity:    in.Capacity,
		Category:    in.Category,
		Status:      model.EventStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.events.Save(ctx, nil, ev); err != nil {
		return nil, err
	}
	uc.log.Info().Str("event", ev.ID).Str("title", ev.Title).Msg("event created")
	return ev, nil
}

func (uc *EventUseCase) Get(ctx context.Context, id string) (*model.Event, error) {
	if id == "" {
		return nil, domain.ErrInvalidArgument
	}
	ev, err := uc.events.FindByID(ctx, nil, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return ev, nil
}

func (uc *EventUseCase) ListPublished(ctx context.Context) ([]*model.Event, error) {
	return uc.events.ListPublished(ctx, nil)
}

func (uc *EventUseCase) ListByOrganizer(ctx context.Context, organizerID string) ([]*model.Event, error) {
	if organizerID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return uc.events.ListByOrganizer(ctx, nil, organizerID)
}

func (uc *EventUseCase) UpdateStatus(ctx context.Context, id string, status model.EventStatus) error {
	switch status {
	case model.EventStatusDraft, model.EventStatusPublished, model.EventStatusCancelled, model.EventStatusCompleted:
	default:
		return domain.ErrInvalidArgument
	}
	return uc.events.UpdateStatus(ctx, nil, id, status)
}

type CreateTierInput struct {
	EventID     string
	Name        string
	Description *string
	Price       int64
	Capacity    *int
	SortOrder   int
}

func (uc *EventUseCase) CreateTier(ctx context.Context, in CreateTierInput) (*model.TicketTier, error) {
	if in.EventID == "" || in.Name == "" || in.Price < 0 {
		return nil, domain.ErrInvalidArgument
	}
	if _, err := uc.events.FindByID(ctx, nil, in.EventID); err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	t := &model.TicketTier{
		EventID:     in.EventID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Capacity:    in.Capacity,
		TicketsSold: 0,
		IsActive:    true,
		SortOrder:   in.SortOrder,
		CreatedAt:   uc.now(),
	}
	if err := uc.tiers.Save(ctx, nil, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *EventUseCase) ListTiers(ctx context.Context, eventID string) ([]*model.TicketTier, error) {
	if eventID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return uc.tiers.ListByEvent(ctx, nil, eventID)
}
