package ledger

import (
	"errors"

	"reels_monetization/internal/money"
)

// Errors reported by the ledger. They protect the non-negative balance
// invariant and are always returned to the direct caller.
var (
	ErrInvalidAmount       = money.ErrInvalidAmount
	ErrInvalidRate         = money.ErrInvalidRate
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotFound            = errors.New("account not found")
	ErrAlreadyExists       = errors.New("account already exists")
	ErrSameAccount         = errors.New("sender and receiver are the same account")
)
