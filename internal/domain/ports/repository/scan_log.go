package repository

import (
	"context"

	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/model"
)

// ScanLogRepository is append-only: nothing in the core updates or deletes
// an entry once written.
type ScanLogRepository interface {
	Append(ctx context.Context, tx Tx, e *model.ScanLogEntry) error
	ListRecent(ctx context.Context, tx Tx, limit int) ([]*model.ScanLogEntry, error)
}
