package api

import "github.com/shopspring/decimal"

// User is a public user profile.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"created_at"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User User `json:"user"`
}

// Participant is one requested share of a new expense.
// ShareValue is the percentage or fixed amount; it is ignored for equal shares.
type Participant struct {
	UserID     string           `json:"user_id"`
	ShareType  string           `json:"share_type"`
	ShareValue *decimal.Decimal `json:"share_value,omitempty"`
}

// CreateExpenseRequest records an expense on behalf of the caller.
// PayerID defaults to the caller.
type CreateExpenseRequest struct {
	Name         string          `json:"name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PayerID      string          `json:"payer_id,omitempty"`
	Participants []Participant   `json:"participants"`
}

type Expense struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TotalAmount string `json:"total_amount"`
	CreatorID   string `json:"creator_id"`
	PayerID     string `json:"payer_id"`
	CreatedAt   int64  `json:"created_at"`
}

type Share struct {
	UserID     string  `json:"user_id"`
	ShareType  string  `json:"share_type"`
	ShareValue *string `json:"share_value,omitempty"`
	AmountOwed string  `json:"amount_owed"`
}

type CreateExpenseResponse struct {
	Message string  `json:"message"`
	Expense Expense `json:"expense"`
	Shares  []Share `json:"shares"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type GetExpenseResponse struct {
	Expense Expense `json:"expense"`
	Shares  []Share `json:"shares"`
}

type GetNetBalancesRequest struct{}

type BalanceSummary struct {
	TotalOwedToYou string `json:"total_owed_to_you"`
	TotalYouOwe    string `json:"total_you_owe"`
	NetBalance     string `json:"net_balance"`
	OverallStatus  string `json:"overall_status"`
}

type NetBalance struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Balance string `json:"balance"`
	Status  string `json:"status"`
}

type GetNetBalancesResponse struct {
	Summary BalanceSummary `json:"summary"`
	Details []NetBalance   `json:"details"`
}

type GetPairwiseHistoryRequest struct {
	FriendID string `json:"friend_id"`
}

type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type OwedAmount struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type Member struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	AmountOwed string `json:"amount_owed"`
}

type ExpenseView struct {
	ExpenseID   string     `json:"expense_id"`
	Title       string     `json:"title"`
	TotalAmount string     `json:"total_amount"`
	PaidBy      UserRef    `json:"paid_by"`
	Owes        OwedAmount `json:"owes"`
	Members     []Member   `json:"members"`
	CreatedAt   int64      `json:"created_at"`
	Status      string     `json:"status"`
}

type PairwiseSummary struct {
	NetBalance    string `json:"net_balance"`
	OverallStatus string `json:"overall_status"`
}

type GetPairwiseHistoryResponse struct {
	Summary  PairwiseSummary `json:"summary"`
	Expenses []ExpenseView   `json:"expenses"`
}
