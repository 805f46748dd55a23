package usecase

import (
	"context"

	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/model"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/ports/repository"
)

// StatsUseCase aggregates read-only dashboard numbers. Nothing here mutates
// state; it is a consumer of the validation core's results.
type StatsUseCase struct {
	events  repository.EventRepository
	tiers   repository.TierRepository
	tickets repository.TicketRepository
}

func NewStatsUseCase(events repository.EventRepository, tiers repository.TierRepository, tickets repository.TicketRepository) *StatsUseCase {
	return &StatsUseCase{events: events, tiers: tiers, tickets: tickets}
}

type EventAnalytics struct {
	EventID    string `json:"event_id"`
	EventTitle string `json:"event_title"`
	Sold       int    `json:"tickets_sold"`
	CheckedIn  int    `json:"checked_in"`
	Revenue    int64  `json:"revenue"`
}

type DashboardTotals struct {
	TotalEvents    int     `json:"total_events"`
	TotalSold      int     `json:"total_tickets_sold"`
	TotalCheckedIn int     `json:"total_checked_in"`
	TotalRevenue   int64   `json:"total_revenue"`
	CheckInRate    float64 `json:"check_in_rate"`
}

// PerEvent computes analytics for every event the organizer owns. Revenue is
// the sum of tier price times tickets sold per tier.
func (uc *StatsUseCase) PerEvent(ctx context.Context, organizerID string) ([]*EventAnalytics, error) {
	if organizerID == "" {
		return nil, domain.ErrInvalidArgument
	}
	events, err := uc.events.ListByOrganizer(ctx, nil, organizerID)
	if err != nil {
		return nil, err
	}

	out := make([]*EventAnalytics, 0, len(events))
	for _, ev := range events {
		a, err := uc.forEvent(ctx, ev)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Dashboard rolls the per-event numbers up into organizer-wide totals.
func (uc *StatsUseCase) Dashboard(ctx context.Context, organizerID string) (*DashboardTotals, error) {
	perEvent, err := uc.PerEvent(ctx, organizerID)
	if err != nil {
		return nil, err
	}

	totals := &DashboardTotals{TotalEvents: len(perEvent)}
	for _, a := range perEvent {
		totals.TotalSold += a.Sold
		totals.TotalCheckedIn += a.CheckedIn
		totals.TotalRevenue += a.Revenue
	}
	if totals.TotalSold > 0 {
		totals.CheckInRate = float64(totals.TotalCheckedIn) / float64(totals.TotalSold)
	}
	return totals, nil
}

func (uc *StatsUseCase) forEvent(ctx context.Context, ev *model.Event) (*EventAnalytics, error) {
	sold, checkedIn, err := uc.tickets.CountByEvent(ctx, nil, ev.ID)
	if err != nil {
		return nil, err
	}
	tiers, err := uc.tiers.ListByEvent(ctx, nil, ev.ID)
	if err != nil {
		return nil, err
	}
	var revenue int64
	for _, t := range tiers {
		revenue += t.Price * int64(t.TicketsSold)
	}
	return &EventAnalytics{
		EventID:    ev.ID,
		EventTitle: ev.Title,
		Sold:       sold,
		CheckedIn:  checkedIn,
		Revenue:    revenue,
	}, nil
}
