package model

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFree     PaymentStatus = "free"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Ticket is an issued admission ticket. The code is opaque and immutable;
// IsUsed flips to true exactly once, through the validation path only.
type Ticket struct {
	ID            string        `json:"id"`
	Code          string        `json:"ticket_code"`
	TicketType    string        `json:"ticket_type"`
	EventID       *string       `json:"event_id"`
	TierID        *string       `json:"tier_id"`
	BuyerID       *string       `json:"buyer_id"`
	AttendeeName  *string       `json:"attendee_name"`
	AttendeeEmail *string       `json:"attendee_email"`
	AttendeePhone *string       `json:"attendee_phone"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	IsUsed        bool          `json:"is_used"`
	UsedAt        *time.Time    `json:"used_at"`
	CheckedInAt   *time.Time    `json:"checked_in_at"`
	CreatedAt     time.Time     `json:"created_at"`
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewTicketCode builds a code like TIX-MBXK2J1C-4QZ7P9: a fixed prefix, a
// base36 timestamp segment and a random segment. Uniqueness is enforced by
// the store; the timestamp segment just keeps collisions improbable.
func NewTicketCode(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	var b strings.Builder
	for i := 0; i < 6; i++ {
		b.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}
	return "TIX-" + ts + "-" + b.String()
}
