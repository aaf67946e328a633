package ledger

import "errors"

var (
	// ErrInvalidAmount rejects non-positive or sub-cent amounts before a
	// unit is even opened.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNotFound covers both a missing holding and a holding owned by
	// someone else, so callers cannot probe for other users' ids.
	ErrNotFound = errors.New("holding not found")

	// ErrUnauthorized is the internal cause behind a masked ErrNotFound.
	ErrUnauthorized = errors.New("holding not owned by caller")

	// ErrInsufficientFunds means a debit would have taken a balance
	// below zero. Nothing is written.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrConflict means two units collided on the same holding and the
	// retry budget ran out.
	ErrConflict = errors.New("conflicting concurrent operation")

	// ErrLoanState rejects disbursing a loan that is not Pending or
	// Approved.
	ErrLoanState = errors.New("loan not in a disbursable state")

	// ErrStoreUnavailable means the durability layer could not be
	// reached. The unit is guaranteed to have committed atomically or
	// not at all.
	ErrStoreUnavailable = errors.New("ledger store unavailable")
)
