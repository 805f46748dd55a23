//go:build !integration

package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/Shadolnow/gatescan-pass-6f6688ad/internal/domain/model"
)

func TestStatsPerEventAndDashboard(t *testing.T) {
	tickets := newMemTicketRepo()
	tiers := newMemTierRepo()
	events := newMemEventRepo()
	uc := NewStatsUseCase(events, tiers, tickets)

	ev := &model.Event{OrganizerID: "org-1", Title: "Expo", EventDate: time.Now(), Venue: "Hall A", Status: model.EventStatusPublished}
	if err := events.Save(context.Background(), nil, ev); err != nil {
		t.Fatal(err)
	}
	tier := &model.TicketTier{EventID: ev.ID, Name: "GA", Price: 1500, TicketsSold: 3, IsActive: true}
	if err := tiers.Save(context.Background(), nil, tier); err != nil {
		t.Fatal(err)
	}

	usedAt := time.Now()
	for i, used := range []bool{true, false, true} {
		tk := &model.Ticket{
			Code:          model.NewTicketCode(time.Now().Add(time.Duration(i) * time.Millisecond)),
			EventID:       &ev.ID,
			TierID:        &tier.ID,
			PaymentStatus: model.PaymentStatusPaid,
			IsUsed:        used,
		}
		if used {
			tk.UsedAt = &usedAt
		}
		tickets.put(tk)
	}
	// A pending ticket counts for neither sold nor checked-in totals.
	pending := &model.Ticket{Code: model.NewTicketCode(time.Now().Add(time.Second)), EventID: &ev.ID, PaymentStatus: model.PaymentStatusPending}
	tickets.put(pending)

	per, err := uc.PerEvent(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("PerEvent: %v", err)
	}
	if len(per) != 1 {
		t.Fatalf("len = %d, want 1", len(per))
	}
	a := per[0]
	if a.Sold != 3 || a.CheckedIn != 2 {
		t.Fatalf("sold = %d checkedIn = %d, want 3 and 2", a.Sold, a.CheckedIn)
	}
	if a.Revenue != 4500 {
		t.Fatalf("revenue = %d, want 4500", a.Revenue)
	}

	totals, err := uc.Dashboard(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if totals.TotalEvents != 1 || totals.TotalSold != 3 || totals.TotalCheckedIn != 2 || totals.TotalRevenue != 4500 {
		t.Fatalf("totals = %+v", totals)
	}
	if want := 2.0 / 3.0; totals.CheckInRate != want {
		t.Fatalf("check-in rate = %v, want %v", totals.CheckInRate, want)
	}
}

func TestStatsDashboard_NoEvents(t *testing.T) {
	uc := NewStatsUseCase(newMemEventRepo(), newMemTierRepo(), newMemTicketRepo())

	totals, err := uc.Dashboard(context.Background(), "org-empty")
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if totals.TotalEvents != 0 || totals.CheckInRate != 0 {
		t.Fatalf("totals = %+v", totals)
	}
}
