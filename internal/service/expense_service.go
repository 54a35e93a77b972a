// Package service implements the connect handlers. Handlers read the
// authenticated principal once and pass its user ID explicitly to the ledger.
package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/rai-ahmadfraz/split-it-api/internal/auth"
	"github.com/rai-ahmadfraz/split-it-api/internal/ledger"
	"github.com/rai-ahmadfraz/split-it-api/internal/middleware"
	"github.com/rai-ahmadfraz/split-it-api/internal/models"
	"github.com/rai-ahmadfraz/split-it-api/pkg/api"
)

// ExpenseCreatedMessage is returned by CreateExpense on success.
const ExpenseCreatedMessage = "Expense created successfully"

// ExpenseService implements api.ExpenseServiceHandler.
type ExpenseService struct {
	ledger *ledger.Ledger
}

// NewExpenseService creates an ExpenseService over l.
func NewExpenseService(l *ledger.Ledger) *ExpenseService {
	return &ExpenseService{ledger: l}
}

func principal(ctx context.Context) (middleware.Principal, error) {
	p, ok := middleware.PrincipalFrom(ctx)
	if !ok {
		return middleware.Principal{}, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return p, nil
}

// CreateExpense records an expense created by the caller.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	payerID := req.Msg.PayerID
	if payerID == "" {
		payerID = p.UserID
	}

	participants := make([]models.ParticipantShare, len(req.Msg.Participants))
	for i, part := range req.Msg.Participants {
		shareType, err := models.ParseShareType(part.ShareType)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		participants[i] = models.ParticipantShare{
			UserID:     part.UserID,
			ShareType:  shareType,
			ShareValue: part.ShareValue,
		}
	}

	slog.Debug("CreateExpense request",
		"user_id", p.UserID,
		"name", req.Msg.Name,
		"payer_id", payerID,
		"participants", len(participants))

	result, err := s.ledger.CreateExpense(ctx, ledger.CreateExpenseInput{
		Name:         req.Msg.Name,
		TotalAmount:  req.Msg.TotalAmount,
		CreatorID:    p.UserID,
		PayerID:      payerID,
		Participants: participants,
	})
	if err != nil {
		slog.Warn("CreateExpense failed", "user_id", p.UserID, "error", err)
		return nil, ledgerError(err)
	}

	return connect.NewResponse(&api.CreateExpenseResponse{
		Message: ExpenseCreatedMessage,
		Expense: expenseToAPI(result.Expense),
		Shares:  sharesToAPI(result.Shares),
	}), nil
}

// GetExpense returns an expense with its shares.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	if _, err := principal(ctx); err != nil {
		return nil, err
	}

	expense, shares, err := s.ledger.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, ledgerError(err)
	}

	return connect.NewResponse(&api.GetExpenseResponse{
		Expense: expenseToAPI(expense),
		Shares:  sharesToAPI(shares),
	}), nil
}

// GetNetBalances returns the caller's balance against everyone they share expenses with.
func (s *ExpenseService) GetNetBalances(ctx context.Context, req *connect.Request[api.GetNetBalancesRequest]) (*connect.Response[api.GetNetBalancesResponse], error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	balances, err := s.ledger.NetBalances(ctx, p.UserID)
	if err != nil {
		slog.Error("GetNetBalances failed", "user_id", p.UserID, "error", err)
		return nil, ledgerError(err)
	}

	slog.Debug("GetNetBalances", "user_id", p.UserID, "counterparties", len(balances.Details))
	return connect.NewResponse(balancesToAPI(balances)), nil
}

// GetPairwiseHistory returns the expenses shared between the caller and a friend.
func (s *ExpenseService) GetPairwiseHistory(ctx context.Context, req *connect.Request[api.GetPairwiseHistoryRequest]) (*connect.Response[api.GetPairwiseHistoryResponse], error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.FriendID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errFriendRequired)
	}

	history, err := s.ledger.PairwiseHistory(ctx, p.UserID, req.Msg.FriendID)
	if err != nil {
		return nil, ledgerError(err)
	}

	slog.Debug("GetPairwiseHistory", "user_id", p.UserID, "friend_id", req.Msg.FriendID, "expenses", len(history.Expenses))
	return connect.NewResponse(pairwiseToAPI(history)), nil
}
