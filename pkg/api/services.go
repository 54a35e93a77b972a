package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	// AuthServiceName is the fully-qualified name of the AuthService.
	AuthServiceName = "splitit.v1.AuthService"
	// ExpenseServiceName is the fully-qualified name of the ExpenseService.
	ExpenseServiceName = "splitit.v1.ExpenseService"
)

// Procedure names, usable as HTTP paths and in interceptors.
const (
	AuthServiceRegisterProcedure       = "/splitit.v1.AuthService/Register"
	AuthServiceLoginProcedure          = "/splitit.v1.AuthService/Login"
	AuthServiceGetCurrentUserProcedure = "/splitit.v1.AuthService/GetCurrentUser"

	ExpenseServiceCreateExpenseProcedure      = "/splitit.v1.ExpenseService/CreateExpense"
	ExpenseServiceGetExpenseProcedure         = "/splitit.v1.ExpenseService/GetExpense"
	ExpenseServiceGetNetBalancesProcedure     = "/splitit.v1.ExpenseService/GetNetBalances"
	ExpenseServiceGetPairwiseHistoryProcedure = "/splitit.v1.ExpenseService/GetPairwiseHistory"
)

// PublicProcedures need no bearer token.
var PublicProcedures = []string{
	AuthServiceRegisterProcedure,
	AuthServiceLoginProcedure,
}

// AuthServiceHandler is implemented by the server side of AuthService.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error)
}

// ExpenseServiceHandler is implemented by the server side of ExpenseService.
type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error)
	GetNetBalances(context.Context, *connect.Request[GetNetBalancesRequest]) (*connect.Response[GetNetBalancesResponse], error)
	GetPairwiseHistory(context.Context, *connect.Request[GetPairwiseHistoryRequest]) (*connect.Response[GetPairwiseHistoryResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler for svc. It returns the path
// to mount the handler on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withJSONHandler(opts)
	routes := map[string]http.Handler{
		AuthServiceRegisterProcedure:       connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...),
		AuthServiceLoginProcedure:          connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...),
		AuthServiceGetCurrentUserProcedure: connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...),
	}
	return "/" + AuthServiceName + "/", route(routes)
}

// NewExpenseServiceHandler builds an HTTP handler for svc. It returns the path
// to mount the handler on.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withJSONHandler(opts)
	routes := map[string]http.Handler{
		ExpenseServiceCreateExpenseProcedure:      connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...),
		ExpenseServiceGetExpenseProcedure:         connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, opts...),
		ExpenseServiceGetNetBalancesProcedure:     connect.NewUnaryHandler(ExpenseServiceGetNetBalancesProcedure, svc.GetNetBalances, opts...),
		ExpenseServiceGetPairwiseHistoryProcedure: connect.NewUnaryHandler(ExpenseServiceGetPairwiseHistoryProcedure, svc.GetPairwiseHistory, opts...),
	}
	return "/" + ExpenseServiceName + "/", route(routes)
}

func withJSONHandler(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{WithJSON()}, opts...)
}

func route(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// AuthServiceClient calls AuthService.
type AuthServiceClient struct {
	register       *connect.Client[RegisterRequest, RegisterResponse]
	login          *connect.Client[LoginRequest, LoginResponse]
	getCurrentUser *connect.Client[GetCurrentUserRequest, GetCurrentUserResponse]
}

// NewAuthServiceClient creates a client for the AuthService at baseURL
// (e.g. http://localhost:8080).
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	opts = withJSONClient(opts)
	return &AuthServiceClient{
		register:       connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:          connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		getCurrentUser: connect.NewClient[GetCurrentUserRequest, GetCurrentUserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure, opts...),
	}
}

func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

// ExpenseServiceClient calls ExpenseService.
type ExpenseServiceClient struct {
	createExpense      *connect.Client[CreateExpenseRequest, CreateExpenseResponse]
	getExpense         *connect.Client[GetExpenseRequest, GetExpenseResponse]
	getNetBalances     *connect.Client[GetNetBalancesRequest, GetNetBalancesResponse]
	getPairwiseHistory *connect.Client[GetPairwiseHistoryRequest, GetPairwiseHistoryResponse]
}

// NewExpenseServiceClient creates a client for the ExpenseService at baseURL.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	opts = withJSONClient(opts)
	return &ExpenseServiceClient{
		createExpense:      connect.NewClient[CreateExpenseRequest, CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		getExpense:         connect.NewClient[GetExpenseRequest, GetExpenseResponse](httpClient, baseURL+ExpenseServiceGetExpenseProcedure, opts...),
		getNetBalances:     connect.NewClient[GetNetBalancesRequest, GetNetBalancesResponse](httpClient, baseURL+ExpenseServiceGetNetBalancesProcedure, opts...),
		getPairwiseHistory: connect.NewClient[GetPairwiseHistoryRequest, GetPairwiseHistoryResponse](httpClient, baseURL+ExpenseServiceGetPairwiseHistoryProcedure, opts...),
	}
}

func (c *ExpenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetNetBalances(ctx context.Context, req *connect.Request[GetNetBalancesRequest]) (*connect.Response[GetNetBalancesResponse], error) {
	return c.getNetBalances.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetPairwiseHistory(ctx context.Context, req *connect.Request[GetPairwiseHistoryRequest]) (*connect.Response[GetPairwiseHistoryResponse], error) {
	return c.getPairwiseHistory.CallUnary(ctx, req)
}

func withJSONClient(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{WithJSON()}, opts...)
}
