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

var _ repository.TierRepository = (*tierRepo)(nil)

type tierRepo struct{ pool *pgxpool.Pool }

func NewTierRepo(pool *pgxpool.Pool) *tierRepo {
	return &tierRepo{pool: pool}
}

const tierColumns = `id, event_id, name, description, price, capacity, tickets_sold, is_active, sort_order, created_at`

func (r *tierRepo) Save(ctx context.Context, tx repository.Tx, t *model.TicketTier) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	const q = `
INSERT INTO ticket_tiers (id, event_id, name, description, price, capacity, tickets_sold, is_active, sort_order, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (id) DO UPDATE SET
  name=$3, description=$4, price=$5, capacity=$6, is_active=$8, sort_order=$9;`
	_, err := execSQL(ctx, r.pool, tx, q,
		t.ID, t.EventID, t.Name, t.Description, t.Price, t.Capacity,
		t.TicketsSold, t.IsActive, t.SortOrder, t.CreatedAt,
	)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *tierRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.TicketTier, error) {
	const q = `SELECT ` + tierColumns + ` FROM ticket_tiers WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanTier(row)
}

func (r *tierRepo) ListByEvent(ctx context.Context, tx repository.Tx, eventID string) ([]*model.TicketTier, error) {
	const q = `SELECT ` + tierColumns + ` FROM ticket_tiers WHERE event_id=$1 ORDER BY sort_order ASC, price ASC;`
	rows, err := queryRows(ctx, r.pool, tx, q, eventID)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return nil, err
		}
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.TicketTier
	for rows.Next() {
		t, err := scanTier(rows)
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

// IncrementSold bumps tickets_sold with the same guarded-update shape the
// check-in path uses: the capacity predicate is part of the UPDATE, so two
// racing bookings cannot oversell the last seat of a tier.
func (r *tierRepo) IncrementSold(ctx context.Context, tx repository.Tx, tierID string) (bool, error) {
	const q = `
UPDATE ticket_tiers
   SET tickets_sold = tickets_sold + 1
 WHERE id = $1 AND (capacity IS NULL OR tickets_sold < capacity);`
	tag, err := execSQL(ctx, r.pool, tx, q, tierID)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return false, err
		}
		return false, domain.ErrOperationFailed
	}
	return tag.RowsAffected() == 1, nil
}

func scanTier(row pgx.Row) (*model.TicketTier, error) {
	t := &model.TicketTier{}
	err := row.Scan(
		&t.ID, &t.EventID, &t.Name, &t.Description, &t.Price, &t.Capacity,
		&t.TicketsSold, &t.IsActive, &t.SortOrder, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return t, nil
}
