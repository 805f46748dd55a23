package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/model"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/ports/repository"
)

var _ repository.EventRepository = (*eventRepo)(nil)

type eventRepo struct{ pool *pgxpool.Pool }

func NewEventRepo(pool *pgxpool.Pool) *eventRepo {
	return &eventRepo{pool: pool}
}

const eventColumns = `id, organizer_id, title, description, event_date, end_date, venue, address, city, is_free, base_price, currency, capacity, category, status, created_at, updated_at`

func (r *eventRepo) Save(ctx context.Context, tx repository.Tx, ev *model.Event) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	const q = `
INSERT INTO events (id, organizer_id, title, description, event_date, end_date, venue, address, city, is_free, base_price, currency, capacity, category, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
ON CONFLICT (id) DO UPDATE SET
  title=$3, description=$4, event_date=$5, end_date=$6, venue=$7, address=$8,
  city=$9, is_free=$10, base_price=$11, currency=$12, capacity=$13,
  category=$14, status=$15, updated_at=$17;`
	_, err := execSQL(ctx, r.pool, tx, q,
		ev.ID, ev.OrganizerID, ev.Title, ev.Description, ev.EventDate, ev.EndDate,
		ev.Venue, ev.Address, ev.City, ev.IsFree, ev.BasePrice, ev.Currency,
		ev.Capacity, ev.Category, ev.Status, ev.CreatedAt, ev.UpdatedAt,
	)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *eventRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanEvent(row)
}

func (r *eventRepo) ListPublished(ctx context.Context, tx repository.Tx) ([]*model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE status='published' ORDER BY event_date ASC;`
	return r.list(ctx, tx, q)
}

func (r *eventRepo) ListByOrganizer(ctx context.Context, tx repository.Tx, organizerID string) ([]*model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE organizer_id=$1 ORDER BY event_date ASC;`
	return r.list(ctx, tx, q, organizerID)
}

func (r *eventRepo) UpdateStatus(ctx context.Context, tx repository.Tx, id string, status model.EventStatus) error {
	const q = `UPDATE events SET status=$2, updated_at=NOW() WHERE id=$1;`
	tag, err := execSQL(ctx, r.pool, tx, q, id, status)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *eventRepo) list(ctx context.Context, tx repository.Tx, q string, args ...interface{}) ([]*model.Event, error) {
	rows, err := queryRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return nil, err
		}
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if rows.Err() != nil {
		return nil, domain.ErrOperationFailed
	}
	return out, nil
}

func scanEvent(row pgx.Row) (*model.Event, error) {
	ev := &model.Event{}
	err := row.Scan(
		&ev.ID, &ev.OrganizerID, &ev.Title, &ev.Description, &ev.EventDate,
		&ev.EndDate, &ev.Venue, &ev.Address, &ev.City, &ev.IsFree, &ev.BasePrice,
		&ev.Currency, &ev.Capacity, &ev.Category, &ev.Status, &ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return ev, nil
}
