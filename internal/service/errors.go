package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/rai-ahmadfraz/split-it-api/internal/ledger"
)

var errFriendRequired = errors.New("friend_id is required")

// ledgerError converts a ledger error to a connect error. Validation failures
// keep their message; anything else is reported as internal.
func ledgerError(err error) *connect.Error {
	switch {
	case errors.Is(err, ledger.ErrInvalidShare),
		errors.Is(err, ledger.ErrInvalidExpense),
		errors.Is(err, ledger.ErrSelfReference):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ledger.ErrDuplicateName):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, ledger.ErrUnknownParticipant),
		errors.Is(err, ledger.ErrUnknownPayer),
		errors.Is(err, ledger.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	default:
		return connect.NewError(connect.CodeInternal, errors.New("internal error"))
	}
}
