package model

import "time"

// ScanContext is the display context attached to a validation outcome that
// resolved to a real ticket. It is absent for invalid and error outcomes,
// which keeps "valid with no ticket" unrepresentable.
type ScanContext struct {
	TicketType   string
	EventName    *string
	TierName     *string
	AttendeeName *string
	EventDate    *time.Time
	Venue        *string
}

// ValidationResult is the engine's verdict on a single scan attempt.
// Status and Message are always set; Context only for Valid and AlreadyUsed.
type ValidationResult struct {
	Status  ScanStatus
	Message string
	Context *ScanContext
}

func NewValidResult(ctx *ScanContext) *ValidationResult {
	return &ValidationResult{
		Status:  ScanStatusValid,
		Message: "Welcome! Ticket validated successfully",
		Context: ctx,
	}
}

// NewAlreadyUsedResult formats the original usage time into the operator
// message so gate staff can see when the first admission happened.
func NewAlreadyUsedResult(usedAt time.Time, ctx *ScanContext) *ValidationResult {
	return &ValidationResult{
		Status:  ScanStatusAlreadyUsed,
		Message: "Ticket was used at " + usedAt.Local().Format("Jan 2, 2006 3:04:05 PM"),
		Context: ctx,
	}
}

func NewInvalidResult() *ValidationResult {
	return &ValidationResult{Status: ScanStatusInvalid, Message: "Ticket not found"}
}

func NewErrorResult() *ValidationResult {
	return &ValidationResult{Status: ScanStatusError, Message: "Validation failed"}
}

// TicketScanContext builds display context from a ticket and its optional
// event and tier rows.
func TicketScanContext(t *Ticket, ev *Event, tier *TicketTier) *ScanContext {
	sc := &ScanContext{
		TicketType:   t.TicketType,
		AttendeeName: t.AttendeeName,
	}
	if tier != nil {
		sc.TierName = &tier.Name
		if sc.TicketType == "" {
			sc.TicketType = tier.Name
		}
	}
	if ev != nil {
		sc.EventName = &ev.Title
		sc.EventDate = &ev.EventDate
		sc.Venue = &ev.Venue
	}
	return sc
}
