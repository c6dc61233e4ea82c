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
	"github.com/carson-networks/finance-server/internal/logging"
)

// DeleteTransactionInput is the Huma input for deleting a transaction.
type DeleteTransactionInput struct {
	ID        string `path:"id" doc:"Transaction UUID"`
	AccountID string `query:"accountId" doc:"Account UUID the transaction belongs to"`
}

// DeleteTransactionResponse is the response body for deleting a transaction.
type DeleteTransactionResponse struct {
	Message        string `json:"message" doc:"Human readable confirmation"`
	UpdatedBalance string `json:"updatedBalance" doc:"The account's balance after the reversal"`
}

// DeleteTransactionOutput is the Huma output for deleting a transaction.
type DeleteTransactionOutput struct {
	Body DeleteTransactionResponse
}

// DeleteTransactionHandler handles DELETE /v1/transaction/{id}.
type DeleteTransactionHandler struct {
	Engine ledgerEngine
}

// NewDeleteTransactionHandler creates a new DeleteTransactionHandler.
func NewDeleteTransactionHandler(eng ledgerEngine) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{Engine: eng}
}

// Register registers the delete transaction endpoint with the Huma API.
func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        "/v1/transaction/{id}",
		Summary:     "Delete transaction",
		Description: "Removes a transaction and atomically reverses its effect on the account balance.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseDeleteTransactionInput(userID uuid.UUID, input *DeleteTransactionInput) (*actions.DeleteTransaction, error) {
	if input.AccountID == "" {
		return nil, fmt.Errorf("%w: account ID is required", engine.ErrMissingField)
	}

	transactionID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction not found", engine.ErrNotFound)
	}
	accountID, err := uuid.FromString(input.AccountID)
	if err != nil {
		return nil, engine.ErrForbidden
	}

	return &actions.DeleteTransaction{
		UserID:        userID,
		TransactionID: transactionID,
		AccountID:     accountID,
	}, nil
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	userID, ok := identity.FromContext(ctx)
	if !ok {
		return nil, huma.NewError(http.StatusUnauthorized, "missing user identity")
	}

	action, err := parseDeleteTransactionInput(userID, input)
	if err != nil {
		return nil, apierror.FromEngine(err)
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("deleteTransactionMs")
	}
	err = h.Engine.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.FromEngine(err)
	}

	return &DeleteTransactionOutput{
		Body: DeleteTransactionResponse{
			Message:        "Transaction deleted successfully",
			UpdatedBalance: action.NewBalance.String(),
		},
	}, nil
}
