package model

import "time"

type ScanStatus string

const (
	ScanStatusValid       ScanStatus = "valid"
	ScanStatusInvalid     ScanStatus = "invalid"
	ScanStatusAlreadyUsed ScanStatus = "already-used"
	ScanStatusError       ScanStatus = "error"
)

// ScanLogEntry is one row of the append-only audit trail. TicketCode is the
// submitted code verbatim and need not reference an existing ticket.
type ScanLogEntry struct {
	ID         string     `json:"id"`
	TicketCode string     `json:"ticket_code"`
	Status     ScanStatus `json:"status"`
	ScannedAt  time.Time  `json:"scanned_at"`
}
