package ledger

import "errors"

// Errors returned by ledger operations. They are wrapped with context, so
// match them with errors.Is.
var (
	ErrDuplicateName      = errors.New("an expense with this name already exists")
	ErrUnknownParticipant = errors.New("participant does not exist")
	ErrUnknownPayer       = errors.New("payer does not exist")
	ErrInvalidShare       = errors.New("invalid share")
	ErrInvalidExpense     = errors.New("invalid expense")
	ErrSelfReference      = errors.New("cannot query balance history with yourself")
	ErrNotFound           = errors.New("not found")
)
