package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/model"
	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// memTicketRepo is a small in-memory implementation used by unit tests. The
// mutex makes ConditionalMarkUsed a real compare-and-swap so race tests mean
// something.
type memTicketRepo struct {
	mu      sync.Mutex
	byCode  map[string]*model.Ticket
	events  map[string]*model.Event
	tiers   map[string]*model.TicketTier
	findErr error
	markErr error
	// markHook runs inside ConditionalMarkUsed before the guard check; tests
	// use it to interleave a competing claim.
	markHook func()
	reads    int
	writes   int
}

func newMemTicketRepo() *memTicketRepo {
	return &memTicketRepo{
		byCode: make(map[string]*model.Ticket),
		events: make(map[string]*model.Event),
		tiers:  make(map[string]*model.TicketTier),
	}
}

func (m *memTicketRepo) put(t *model.Ticket) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	cp := *t
	m.byCode[t.Code] = &cp
}

func (m *memTicketRepo) Save(ctx context.Context, tx repository.Tx, t *model.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	cp := *t
	m.byCode[t.Code] = &cp
	return nil
}

func (m *memTicketRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.byCode {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memTicketRepo) FindByCode(ctx context.Context, tx repository.Tx, code string) (*repository.TicketWithContext, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.findErr != nil {
		return nil, m.findErr
	}
	t, ok := m.byCode[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	out := &repository.TicketWithContext{Ticket: &cp}
	if t.EventID != nil {
		if ev, ok := m.events[*t.EventID]; ok {
			evCp := *ev
			out.Event = &evCp
		}
	}
	if t.TierID != nil {
		if tier, ok := m.tiers[*t.TierID]; ok {
			tierCp := *tier
			out.Tier = &tierCp
		}
	}
	return out, nil
}

func (m *memTicketRepo) ConditionalMarkUsed(ctx context.Context, tx repository.Tx, ticketID string, at time.Time) (bool, error) {
	if m.markHook != nil {
		m.markHook()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.markErr != nil {
		return false, m.markErr
	}
	for _, t := range m.byCode {
		if t.ID == ticketID {
			if t.IsUsed {
				return false, nil
			}
			t.IsUsed = true
			usedAt := at
			t.UsedAt = &usedAt
			t.CheckedInAt = &usedAt
			return true, nil
		}
	}
	return false, nil
}

func (m *memTicketRepo) ListByBuyer(ctx context.Context, tx repository.Tx, buyerID string) ([]*model.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Ticket
	for _, t := range m.byCode {
		if t.BuyerID != nil && *t.BuyerID == buyerID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memTicketRepo) ListByEvent(ctx context.Context, tx repository.Tx, eventID string) ([]*model.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Ticket
	for _, t := range m.byCode {
		if t.EventID != nil && *t.EventID == eventID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memTicketRepo) CountByEvent(ctx context.Context, tx repository.Tx, eventID string) (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sold, checkedIn int
	for _, t := range m.byCode {
		if t.EventID == nil || *t.EventID != eventID {
			continue
		}
		if t.PaymentStatus == model.PaymentStatusPaid || t.PaymentStatus == model.PaymentStatusFree {
			sold++
		}
		if t.IsUsed {
			checkedIn++
		}
	}
	return sold, checkedIn, nil
}

// memScanLogRepo records appends in order; appendErr simulates audit
// trail outages.
type memScanLogRepo struct {
	mu        sync.Mutex
	entries   []*model.ScanLogEntry
	appendErr error
}

func newMemScanLogRepo() *memScanLogRepo {
	return &memScanLogRepo{}
}

func (m *memScanLogRepo) Append(ctx context.Context, tx repository.Tx, e *model.ScanLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	cp := *e
	m.entries = append(m.entries, &cp)
	return nil
}

func (m *memScanLogRepo) ListRecent(ctx context.Context, tx repository.Tx, limit int) ([]*model.ScanLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	var out []*model.ScanLogEntry
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *m.entries[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memScanLogRepo) byStatus() map[model.ScanStatus]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[model.ScanStatus]int)
	for _, e := range m.entries {
		counts[e.Status]++
	}
	return counts
}

type memEventRepo struct {
	mu     sync.Mutex
	events map[string]*model.Event
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{events: make(map[string]*model.Event)}
}

func (m *memEventRepo) Save(ctx context.Context, tx repository.Tx, ev *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	cp := *ev
	m.events[ev.ID] = &cp
	return nil
}

func (m *memEventRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ev
	return &cp, nil
}

func (m *memEventRepo) ListPublished(ctx context.Context, tx repository.Tx) ([]*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Event
	for _, ev := range m.events {
		if ev.Status == model.EventStatusPublished {
			cp := *ev
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memEventRepo) ListByOrganizer(ctx context.Context, tx repository.Tx, organizerID string) ([]*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Event
	for _, ev := range m.events {
		if ev.OrganizerID == organizerID {
			cp := *ev
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memEventRepo) UpdateStatus(ctx context.Context, tx repository.Tx, id string, status model.EventStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev, ok := m.events[id]
	if !ok {
		return domain.ErrEventNotFound
	}
	ev.Status = status
	return nil
}

type memTierRepo struct {
	mu    sync.Mutex
	tiers map[string]*model.TicketTier
}

func newMemTierRepo() *memTierRepo {
	return &memTierRepo{tiers: make(map[string]*model.TicketTier)}
}

func (m *memTierRepo) Save(ctx context.Context, tx repository.Tx, t *model.TicketTier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	cp := *t
	m.tiers[t.ID] = &cp
	return nil
}

func (m *memTierRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.TicketTier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tiers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTierRepo) ListByEvent(ctx context.Context, tx repository.Tx, eventID string) ([]*model.TicketTier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.TicketTier
	for _, t := range m.tiers {
		if t.EventID == eventID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memTierRepo) IncrementSold(ctx context.Context, tx repository.Tx, tierID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tiers[tierID]
	if !ok {
		return false, nil
	}
	if t.Capacity != nil && t.TicketsSold >= *t.Capacity {
		return false, nil
	}
	t.TicketsSold++
	return true, nil
}

// memTxManager runs the callback without a real transaction; the in-memory
// repos are already atomic per call.
type memTxManager struct{}

func (memTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, nil)
}
