package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/identity"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// GetTransactionInput is the Huma input for fetching one transaction.
type GetTransactionInput struct {
	ID        string `path:"id" doc:"Transaction UUID"`
	AccountID string `query:"accountId" doc:"Account UUID the transaction belongs to"`
}

// GetTransactionOutput is the Huma output for fetching one transaction.
type GetTransactionOutput struct {
	Body Transaction
}

// transactionGetter is the interface for reading one transaction.
type transactionGetter interface {
	GetTransaction(ctx context.Context, id, userID, accountID uuid.UUID) (*transaction.Transaction, error)
}

// GetTransactionHandler handles GET /v1/transaction/{id}.
type GetTransactionHandler struct {
	TransactionService transactionGetter
}

// NewGetTransactionHandler creates a new GetTransactionHandler.
func NewGetTransactionHandler(svc transactionGetter) *GetTransactionHandler {
	return &GetTransactionHandler{TransactionService: svc}
}

// Register registers the get transaction endpoint with the Huma API.
func (h *GetTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/transaction/{id}",
		Summary:     "Get transaction",
		Description: "Returns one transaction scoped to the acting user and the given account.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *GetTransactionHandler) handle(ctx context.Context, input *GetTransactionInput) (*GetTransactionOutput, error) {
	userID, ok := identity.FromContext(ctx)
	if !ok {
		return nil, huma.NewError(http.StatusUnauthorized, "missing user identity")
	}

	if input.AccountID == "" {
		return nil, huma.NewError(http.StatusBadRequest, "account ID is required")
	}

	transactionID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusNotFound, "transaction not found")
	}
	accountID, err := uuid.FromString(input.AccountID)
	if err != nil {
		return nil, huma.NewError(http.StatusNotFound, "transaction not found")
	}

	record, err := h.TransactionService.GetTransaction(ctx, transactionID, userID, accountID)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to fetch transaction", err)
	}
	if record == nil {
		return nil, huma.NewError(http.StatusNotFound, "transaction not found")
	}

	return &GetTransactionOutput{Body: fromRecord(record)}, nil
}
