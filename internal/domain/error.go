package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrTicketAlreadyUsed  = errors.New("ticket already used")
	ErrEventNotFound      = errors.New("event not found")
	ErrTierNotFound       = errors.New("ticket tier not found")
	ErrTierSoldOut        = errors.New("ticket tier sold out")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrOperationFailed    = errors.New("storage operation failed")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
	ErrInvalidExecContext = errors.New("invalid exec context")
	ErrRateLimited        = errors.New("too many requests")
)
