package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/model"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/ports/repository"
)

var _ repository.TicketRepository = (*ticketRepo)(nil)

type ticketRepo struct{ pool *pgxpool.Pool }

func NewTicketRepo(pool *pgxpool.Pool) *ticketRepo {
	return &ticketRepo{pool: pool}
}

const ticketColumns = `id, ticket_code, ticket_type, event_id, tier_id, buyer_id, attendee_name, attendee_email, attendee_phone, payment_status, is_used, used_at, checked_in_at, created_at`

func (r *ticketRepo) Save(ctx context.Context, tx repository.Tx, t *model.Ticket) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	const q = `
INSERT INTO tickets (id, ticket_code, ticket_type, event_id, tier_id, buyer_id, attendee_name, attendee_email, attendee_phone, payment_status, is_used, used_at, checked_in_at, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14);`
	_, err := execSQL(ctx, r.pool, tx, q,
		t.ID, t.Code, t.TicketType, t.EventID, t.TierID, t.BuyerID,
		t.AttendeeName, t.AttendeeEmail, t.AttendeePhone, t.PaymentStatus,
		t.IsUsed, t.UsedAt, t.CheckedInAt, t.CreatedAt,
	)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *ticketRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Ticket, error) {
	const q = `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanTicket(row)
}

// FindByCode resolves a ticket by exact code match, joined with its owning
// event and tier so the validation response can carry display context.
// Event and tier are nil for legacy tickets that reference neither.
func (r *ticketRepo) FindByCode(ctx context.Context, tx repository.Tx, code string) (*repository.TicketWithContext, error) {
	const q = `
SELECT t.id, t.ticket_code, t.ticket_type, t.event_id, t.tier_id, t.buyer_id,
       t.attendee_name, t.attendee_email, t.attendee_phone, t.payment_status,
       t.is_used, t.used_at, t.checked_in_at, t.created_at,
       e.id, e.title, e.venue, e.event_date,
       tt.id, tt.name, tt.price
  FROM tickets t
  LEFT JOIN events e ON e.id = t.event_id
  LEFT JOIN ticket_tiers tt ON tt.id = t.tier_id
 WHERE t.ticket_code = $1;`
	row, err := pickRow(ctx, r.pool, tx, q, code)
	if err != nil {
		return nil, err
	}

	var (
		t       model.Ticket
		evID    *string
		evTitle *string
		evVenue *string
		evDate  *time.Time
		tierID  *string
		tierNm  *string
		tierPr  *int64
	)
	err = row.Scan(
		&t.ID, &t.Code, &t.TicketType, &t.EventID, &t.TierID, &t.BuyerID,
		&t.AttendeeName, &t.AttendeeEmail, &t.AttendeePhone, &t.PaymentStatus,
		&t.IsUsed, &t.UsedAt, &t.CheckedInAt, &t.CreatedAt,
		&evID, &evTitle, &evVenue, &evDate,
		&tierID, &tierNm, &tierPr,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}

	out := &repository.TicketWithContext{Ticket: &t}
	if evID != nil {
		out.Event = &model.Event{ID: *evID, Title: *evTitle, Venue: *evVenue, EventDate: *evDate}
	}
	if tierID != nil {
		out.Tier = &model.TicketTier{ID: *tierID, Name: *tierNm, Price: *tierPr}
	}
	return out, nil
}

// ConditionalMarkUsed is the compare-and-swap the check-in guarantee rests
// on: the guard on is_used=FALSE means that of any number of concurrent
// callers, the row transitions exactly once and exactly one caller sees
// RowsAffected()==1. Callers must never pre-check is_used and skip the guard.
func (r *ticketRepo) ConditionalMarkUsed(ctx context.Context, tx repository.Tx, ticketID string, at time.Time) (bool, error) {
	const q = `
UPDATE tickets
   SET is_used = TRUE, used_at = $2, checked_in_at = $2
 WHERE id = $1 AND is_used = FALSE;`
	tag, err := execSQL(ctx, r.pool, tx, q, ticketID, at)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return false, err
		}
		return false, domain.ErrOperationFailed
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ticketRepo) ListByBuyer(ctx context.Context, tx repository.Tx, buyerID string) ([]*model.Ticket, error) {
	const q = `SELECT ` + ticketColumns + ` FROM tickets WHERE buyer_id=$1 ORDER BY created_at DESC;`
	return r.list(ctx, tx, q, buyerID)
}

func (r *ticketRepo) ListByEvent(ctx context.Context, tx repository.Tx, eventID string) ([]*model.Ticket, error) {
	const q = `SELECT ` + ticketColumns + ` FROM tickets WHERE event_id=$1 ORDER BY created_at DESC;`
	return r.list(ctx, tx, q, eventID)
}

func (r *ticketRepo) CountByEvent(ctx context.Context, tx repository.Tx, eventID string) (int, int, error) {
	const q = `
SELECT COUNT(*) FILTER (WHERE payment_status IN ('paid','free')),
       COUNT(*) FILTER (WHERE is_used)
  FROM tickets WHERE event_id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, eventID)
	if err != nil {
		return 0, 0, err
	}
	var sold, checkedIn int
	if err := row.Scan(&sold, &checkedIn); err != nil {
		return 0, 0, domain.ErrReadDatabaseRow
	}
	return sold, checkedIn, nil
}

func (r *ticketRepo) list(ctx context.Context, tx repository.Tx, q string, arg interface{}) ([]*model.Ticket, error) {
	rows, err := queryRows(ctx, r.pool, tx, q, arg)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return nil, err
		}
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if rows.Err() != nil {
		return nil, domain.ErrOperationFailed
	}
	return out, nil
}

func scanTicket(row pgx.Row) (*model.Ticket, error) {
	t := &model.Ticket{}
	err := row.Scan(
		&t.ID, &t.Code, &t.TicketType, &t.EventID, &t.TierID, &t.BuyerID,
		&t.AttendeeName, &t.AttendeeEmail, &t.AttendeePhone, &t.PaymentStatus,
		&t.IsUsed, &t.UsedAt, &t.CheckedInAt, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return t, nil
}
