package model

import "time"

type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// Event is the organizer-owned record a ticket admits to.
type Event struct {
	ID          string      `json:"id"`
	OrganizerID string      `json:"organizer_id"`
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	EventDate   time.Time   `json:"event_date"`
	EndDate     *time.Time  `json:"end_date"`
	Venue       string      `json:"venue"`
	Address     *string     `json:"address"`
	City        *string     `json:"city"`
	IsFree      bool        `json:"is_free"`
	BasePrice   *int64      `json:"base_price"`
	Currency    string      `json:"currency"`
	Capacity    *int        `json:"capacity"`
	Category    *string     `json:"category"`
	Status      EventStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
