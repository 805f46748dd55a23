package model

import "time"

// TicketTier is a price band within an event. Validation reads it only for
// display context; booking maintains TicketsSold under a capacity guard.
type TicketTier struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       int64     `json:"price"`
	Capacity    *int      `json:"capacity"`
	TicketsSold int       `json:"tickets_sold"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}
