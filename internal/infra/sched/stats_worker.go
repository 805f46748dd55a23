package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/ports/repository"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/infra/metrics"
)

// StatsWorker periodically refreshes the per-event sold/checked-in gauges so
// the dashboards scrape counts without hitting the tickets table per request.
type StatsWorker struct {
	interval time.Duration
	events   repository.EventRepository
	tickets  repository.TicketRepository
	log      *zerolog.Logger
}

func NewStatsWorker(interval time.Duration, events repository.EventRepository, tickets repository.TicketRepository, logger *zerolog.Logger) *StatsWorker {
	statsLog := logger.With().Str("component", "StatsWorker").Logger()
	return &StatsWorker{
		interval: interval,
		events:   events,
		tickets:  tickets,
		log:      &statsLog,
	}
}

func (w *StatsWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting stats worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping stats worker")
			return ctx.Err()
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *StatsWorker) sweep(ctx context.Context) {
	events, err := w.events.ListPublished(ctx, nil)
	if err != nil {
		w.log.Error().Err(err).Msg("stats sweep: list events failed")
		return
	}
	for _, ev := range events {
		sold, checkedIn, err := w.tickets.CountByEvent(ctx, nil, ev.ID)
		if err != nil {
			w.log.Error().Err(err).Str("event", ev.ID).Msg("stats sweep: count failed")
			continue
		}
		metrics.SetEventCounts(ev.ID, sold, checkedIn)
	}
}
