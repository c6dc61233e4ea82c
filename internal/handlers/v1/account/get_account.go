package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/identity"
)

// GetAccountInput is the Huma input for fetching one account.
type GetAccountInput struct {
	ID string `path:"id" doc:"Account UUID"`
}

// GetAccountResponse is the response body for fetching one account.
type GetAccountResponse struct {
	Message string  `json:"message" doc:"Human readable confirmation"`
	Account Account `json:"account" doc:"The requested account"`
}

// GetAccountOutput is the Huma output for fetching one account.
type GetAccountOutput struct {
	Body GetAccountResponse
}

// GetAccountHandler handles GET /v1/account/{id}.
type GetAccountHandler struct {
	AccountService accountService
}

// NewGetAccountHandler creates a new GetAccountHandler.
func NewGetAccountHandler(svc accountService) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc}
}

// Register registers the get account endpoint with the Huma API.
func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/account/{id}",
		Summary:     "Get account",
		Description: "Returns one of the acting user's accounts.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *GetAccountHandler) handle(ctx context.Context, input *GetAccountInput) (*GetAccountOutput, error) {
	userID, ok := identity.FromContext(ctx)
	if !ok {
		return nil, huma.NewError(http.StatusUnauthorized, "missing user identity")
	}

	accountID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusNotFound, "account not found")
	}

	record, err := h.AccountService.GetAccount(ctx, accountID, userID)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to fetch account", err)
	}
	if record == nil {
		return nil, huma.NewError(http.StatusNotFound, "account not found")
	}

	return &GetAccountOutput{
		Body: GetAccountResponse{
			Message: "Account loaded successfully",
			Account: fromRecord(record),
		},
	}, nil
}
