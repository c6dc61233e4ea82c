package transaction

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

// UpdateTransactionBody is the request body for updating a transaction.
// Only the category can change; amount, type, and account are fixed at
// creation.
type UpdateTransactionBody struct {
	AccountID  string `json:"accountId,omitempty" doc:"Account UUID the transaction belongs to"`
	CategoryID string `json:"categoryId,omitempty" doc:"New category UUID, must match the transaction's type"`
}

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	ID   string `path:"id" doc:"Transaction UUID"`
	Body UpdateTransactionBody
}

// UpdateTransactionResponse is the response body for updating a transaction.
type UpdateTransactionResponse struct {
	Message     string      `json:"message" doc:"Human readable confirmation"`
	Transaction Transaction `json:"transaction" doc:"The updated transaction"`
}

// UpdateTransactionOutput is the Huma output for updating a transaction.
type UpdateTransactionOutput struct {
	Body UpdateTransactionResponse
}

// UpdateTransactionHandler handles PUT /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	Engine ledgerEngine
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(eng ledgerEngine) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{Engine: eng}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Updates a transaction's category. Amount, type, and account are immutable.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseUpdateTransactionInput(userID uuid.UUID, input *UpdateTransactionInput) (*actions.RelabelTransaction, error) {
	if input.Body.AccountID == "" {
		return nil, fmt.Errorf("%w: account ID is required", engine.ErrMissingField)
	}

	transactionID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction not found", engine.ErrNotFound)
	}
	accountID, err := uuid.FromString(input.Body.AccountID)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction not found", engine.ErrNotFound)
	}

	action := &actions.RelabelTransaction{
		UserID:        userID,
		TransactionID: transactionID,
		AccountID:     accountID,
	}

	if input.Body.CategoryID != "" {
		categoryID, err := uuid.FromString(input.Body.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid category", engine.ErrNotFound)
		}
		action.CategoryID = &categoryID
	}

	return action, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	userID, ok := identity.FromContext(ctx)
	if !ok {
		return nil, huma.NewError(http.StatusUnauthorized, "missing user identity")
	}

	action, err := parseUpdateTransactionInput(userID, input)
	if err != nil {
		return nil, apierror.FromEngine(err)
	}

	if err := h.Engine.Process(ctx, action); err != nil {
		return nil, apierror.FromEngine(err)
	}

	return &UpdateTransactionOutput{
		Body: UpdateTransactionResponse{
			Message:     "Transaction updated successfully",
			Transaction: fromRecord(action.Updated),
		},
	}, nil
}
