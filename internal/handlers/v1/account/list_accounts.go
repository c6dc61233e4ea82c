package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/identity"
	"github.com/carson-networks/finance-server/internal/logging"
)

// ListAccountsInput is the Huma input for listing accounts.
type ListAccountsInput struct{}

// ListAccountsResponseBody is the response body for listing accounts.
type ListAccountsResponseBody struct {
	Message  string    `json:"message" doc:"Human readable confirmation"`
	Accounts []Account `json:"accounts" doc:"The acting user's accounts, newest first"`
}

// ListAccountsOutput is the Huma output for listing accounts.
type ListAccountsOutput struct {
	Body ListAccountsResponseBody
}

// ListAccountsHandler handles GET /v1/account.
type ListAccountsHandler struct {
	AccountService accountService
}

// NewListAccountsHandler creates a new ListAccountsHandler.
func NewListAccountsHandler(svc accountService) *ListAccountsHandler {
	return &ListAccountsHandler{AccountService: svc}
}

// Register registers the list accounts endpoint with the Huma API.
func (h *ListAccountsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/v1/account",
		Summary:     "List accounts",
		Description: "Returns all of the acting user's accounts.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *ListAccountsHandler) handle(ctx context.Context, _ *ListAccountsInput) (*ListAccountsOutput, error) {
	userID, ok := identity.FromContext(ctx)
	if !ok {
		return nil, huma.NewError(http.StatusUnauthorized, "missing user identity")
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listAccountsMs")
	}
	records, err := h.AccountService.ListAccounts(ctx, userID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list accounts", err)
	}

	resp := ListAccountsResponseBody{
		Message:  "Accounts loaded successfully",
		Accounts: make([]Account, len(records)),
	}
	for i, record := range records {
		resp.Accounts[i] = fromRecord(record)
	}

	return &ListAccountsOutput{Body: resp}, nil
}
