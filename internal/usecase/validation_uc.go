package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/model"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/ports/repository"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/infra/logging"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/infra/metrics"
)

// ValidationUseCase is the state-transition authority for check-ins: given a
// ticket code it atomically determines the ticket state and, when eligible,
// transitions it to used. It is the only component allowed to flip is_used.
type ValidationUseCase struct {
	tickets repository.TicketRepository
	scans   repository.ScanLogRepository
	log     *zerolog.Logger
	now     func() time.Time
}

func NewValidationUseCase(tickets repository.TicketRepository, scans repository.ScanLogRepository, logger *zerolog.Logger) *ValidationUseCase {
	return &ValidationUseCase{
		tickets: tickets,
		scans:   scans,
		log:     logger,
		now:     time.Now,
	}
}

// Validate decides a single scan attempt. The code is assumed to be
// sanitized by the gateway (non-empty, trimmed, alphanumeric-and-hyphen).
//
// Correctness under race does not come from the lookup below: between the
// read and the write another gate may admit the same code. The decision is
// made by ConditionalMarkUsed's guarded update; when that update claims no
// row, the loser re-fetches and reports already-used instead of a stale
// valid. All errors are absorbed here: the caller always receives a result.
func (uc *ValidationUseCase) Validate(ctx context.Context, code string) *model.ValidationResult {
	defer logging.TraceDuration(logging.With(ctx, uc.log), "ValidationUC.Validate")()
	start := uc.now()

	res := uc.decide(ctx, code)

	uc.appendLog(ctx, code, res.Status)
	metrics.IncScan(string(res.Status))
	metrics.ObserveScanLatency(float64(uc.now().Sub(start).Microseconds()) / 1000.0)
	return res
}

func (uc *ValidationUseCase) decide(ctx context.Context, code string) *model.ValidationResult {
	l := logging.With(ctx, uc.log)

	twc, err := uc.tickets.FindByCode(ctx, nil, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			l.Info().Str("code", code).Msg("ticket not found")
			return model.NewInvalidResult()
		}
		l.Error().Err(err).Str("code", code).Msg("ticket lookup failed")
		return model.NewErrorResult()
	}

	t := twc.Ticket
	sc := model.TicketScanContext(t, twc.Event, twc.Tier)

	if t.IsUsed {
		l.Info().Str("code", code).Time("used_at", derefTime(t.UsedAt)).Msg("ticket already used")
		return model.NewAlreadyUsedResult(derefTime(t.UsedAt), sc)
	}

	claimed, err := uc.tickets.ConditionalMarkUsed(ctx, nil, t.ID, uc.now())
	if err != nil {
		l.Error().Err(err).Str("code", code).Msg("mark used failed")
		return model.NewErrorResult()
	}
	if !claimed {
		// Lost the race: another validator flipped the flag between our read
		// and our write. Re-fetch for the authoritative usage timestamp.
		l.Info().Str("code", code).Msg("concurrent check-in won the ticket")
		fresh, err := uc.tickets.FindByCode(ctx, nil, code)
		if err != nil {
			l.Error().Err(err).Str("code", code).Msg("re-fetch after lost race failed")
			return model.NewErrorResult()
		}
		return model.NewAlreadyUsedResult(derefTime(fresh.Ticket.UsedAt), model.TicketScanContext(fresh.Ticket, fresh.Event, fresh.Tier))
	}

	l.Info().Str("code", code).Msg("ticket validated")
	return model.NewValidResult(sc)
}

// appendLog records the attempt in the audit trail. A failed append must not
// cost a legitimate check-in, so the error is observed and swallowed.
func (uc *ValidationUseCase) appendLog(ctx context.Context, code string, status model.ScanStatus) {
	entry := &model.ScanLogEntry{
		TicketCode: code,
		Status:     status,
		ScannedAt:  uc.now(),
	}
	if err := uc.scans.Append(ctx, nil, entry); err != nil {
		metrics.IncScanLogFailure()
		logging.With(ctx, uc.log).Error().Err(err).Str("code", code).Str("status", string(status)).Msg("scan log append failed")
	}
}

// History lists the most recent scan attempts, newest first.
func (uc *ValidationUseCase) History(ctx context.Context, limit int) ([]*model.ScanLogEntry, error) {
	return uc.scans.ListRecent(ctx, nil, limit)
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
