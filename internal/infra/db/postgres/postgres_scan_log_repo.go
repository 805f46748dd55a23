package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/oklog/ulid/v2"

	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/model"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/ports/repository"
)

var _ repository.ScanLogRepository = (*scanLogRepo)(nil)

// scanLogRepo persists the append-only audit trail. Entry IDs are ULIDs so
// the table stays insert-ordered without a separate sequence.
type scanLogRepo struct{ pool *pgxpool.Pool }

func NewScanLogRepo(pool *pgxpool.Pool) *scanLogRepo {
	return &scanLogRepo{pool: pool}
}

func (r *scanLogRepo) Append(ctx context.Context, tx repository.Tx, e *model.ScanLogEntry) error {
	if e.ID == "" {
		e.ID = ulid.MustNew(ulid.Timestamp(e.ScannedAt), ulid.DefaultEntropy()).String()
	}
	const q = `INSERT INTO scan_logs (id, ticket_code, status, scanned_at) VALUES ($1,$2,$3,$4);`
	_, err := execSQL(ctx, r.pool, tx, q, e.ID, e.TicketCode, e.Status, e.ScannedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *scanLogRepo) ListRecent(ctx context.Context, tx repository.Tx, limit int) ([]*model.ScanLogEntry, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	const q = `SELECT id, ticket_code, status, scanned_at FROM scan_logs ORDER BY scanned_at DESC LIMIT $1;`
	rows, err := queryRows(ctx, r.pool, tx, q, limit)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return nil, err
		}
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.ScanLogEntry
	for rows.Next() {
		e := &model.ScanLogEntry{}
		if err := rows.Scan(&e.ID, &e.TicketCode, &e.Status, &e.ScannedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, e)
	}
	if rows.Err() != nil {
		return nil, domain.ErrOperationFailed
	}
	return out, nil
}
