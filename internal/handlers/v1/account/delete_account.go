package account

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/engine"
	"github.com/carson-networks/finance-server/internal/engine/actions"
	"github.com/carson-networks/finance-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/finance-server/internal/identity"
)

// DeleteAccountInput is the Huma input for deleting an account.
type DeleteAccountInput struct {
	ID string `path:"id" doc:"Account UUID"`
}

// DeleteAccountResponse is the response body for deleting an account.
type DeleteAccountResponse struct {
	Message string `json:"message" doc:"Human readable confirmation"`
}

// DeleteAccountOutput is the Huma output for deleting an account.
type DeleteAccountOutput struct {
	Body DeleteAccountResponse
}

// ledgerEngine is the interface for submitting actions to the engine.
type ledgerEngine interface {
	Process(ctx context.Context, action engine.IAction) error
}

// DeleteAccountHandler handles DELETE /v1/account/{id}. Deletion goes
// through the engine because the has-transactions check and the delete
// must not race a concurrent transaction creation.
type DeleteAccountHandler struct {
	Engine ledgerEngine
}

// NewDeleteAccountHandler creates a new DeleteAccountHandler.
func NewDeleteAccountHandler(eng ledgerEngine) *DeleteAccountHandler {
	return &DeleteAccountHandler{Engine: eng}
}

// Register registers the delete account endpoint with the Huma API.
func (h *DeleteAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-account",
		Method:      http.MethodDelete,
		Path:        "/v1/account/{id}",
		Summary:     "Delete account",
		Description: "Deletes an account. Fails while the account still has transactions.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *DeleteAccountHandler) handle(ctx context.Context, input *DeleteAccountInput) (*DeleteAccountOutput, error) {
	userID, ok := identity.FromContext(ctx)
	if !ok {
		return nil, huma.NewError(http.StatusUnauthorized, "missing user identity")
	}

	accountID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, apierror.FromEngine(fmt.Errorf("%w: account not found", engine.ErrNotFound))
	}

	action := &actions.DeleteAccount{
		UserID:    userID,
		AccountID: accountID,
	}
	if err := h.Engine.Process(ctx, action); err != nil {
		return nil, apierror.FromEngine(err)
	}

	return &DeleteAccountOutput{
		Body: DeleteAccountResponse{Message: "Account deleted successfully"},
	}, nil
}
