package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/identity"
	"github.com/carson-networks/finance-server/internal/storage/account"
)

// UpdateAccountBody is the request body for updating an account. There is
// no balance field: balances only move through the ledger.
type UpdateAccountBody struct {
	Name string `json:"name,omitempty" doc:"New account name"`
	Type string `json:"type,omitempty" doc:"New account type"`
}

// UpdateAccountInput is the Huma input for updating an account.
type UpdateAccountInput struct {
	ID   string `path:"id" doc:"Account UUID"`
	Body UpdateAccountBody
}

// UpdateAccountResponse is the response body for updating an account.
type UpdateAccountResponse struct {
	Message string  `json:"message" doc:"Human readable confirmation"`
	Account Account `json:"account" doc:"The updated account"`
}

// UpdateAccountOutput is the Huma output for updating an account.
type UpdateAccountOutput struct {
	Body UpdateAccountResponse
}

// UpdateAccountHandler handles PUT /v1/account/{id}.
type UpdateAccountHandler struct {
	AccountService accountService
}

// NewUpdateAccountHandler creates a new UpdateAccountHandler.
func NewUpdateAccountHandler(svc accountService) *UpdateAccountHandler {
	return &UpdateAccountHandler{AccountService: svc}
}

// Register registers the update account endpoint with the Huma API.
func (h *UpdateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-account",
		Method:      http.MethodPut,
		Path:        "/v1/account/{id}",
		Summary:     "Update account",
		Description: "Updates an account's name and type. Balances only change through transactions.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func parseUpdateAccountInput(input *UpdateAccountInput) (account.AccountUpdate, error) {
	var update account.AccountUpdate

	if input.Body.Name != "" {
		name := input.Body.Name
		update.Name = &name
	}
	if input.Body.Type != "" {
		accountType := account.Type(input.Body.Type)
		if !accountType.Valid() {
			return update, huma.NewError(http.StatusBadRequest, "invalid account type")
		}
		update.Type = &accountType
	}

	if update.Name == nil && update.Type == nil {
		return update, huma.NewError(http.StatusBadRequest, "nothing to update")
	}
	return update, nil
}

func (h *UpdateAccountHandler) handle(ctx context.Context, input *UpdateAccountInput) (*UpdateAccountOutput, error) {
	userID, ok := identity.FromContext(ctx)
	if !ok {
		return nil, huma.NewError(http.StatusUnauthorized, "missing user identity")
	}

	accountID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusNotFound, "account not found")
	}

	update, err := parseUpdateAccountInput(input)
	if err != nil {
		return nil, err
	}

	record, err := h.AccountService.UpdateAccount(ctx, accountID, userID, update)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to update account", err)
	}
	if record == nil {
		return nil, huma.NewError(http.StatusNotFound, "account not found")
	}

	return &UpdateAccountOutput{
		Body: UpdateAccountResponse{
			Message: "Account updated successfully",
			Account: fromRecord(record),
		},
	}, nil
}
