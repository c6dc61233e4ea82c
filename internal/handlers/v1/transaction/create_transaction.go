package transaction

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/engine"
	"github.com/carson-networks/finance-server/internal/engine/actions"
	"github.com/carson-networks/finance-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/finance-server/internal/identity"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// CreateTransactionBody is the request body for creating a transaction.
// Fields are schema-optional so that presence is validated in the fixed
// order the API contract promises, with a 400 rather than a schema error.
type CreateTransactionBody struct {
	Amount      string `json:"amount,omitempty" doc:"Decimal amount, must be greater than 0"`
	Type        string `json:"type,omitempty" doc:"income or expense"`
	CategoryID  string `json:"categoryId,omitempty" doc:"Category UUID, must match the transaction type"`
	AccountID   string `json:"accountId,omitempty" doc:"Account UUID"`
	Description string `json:"description,omitempty" doc:"Free-text description"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionResponse is the response body for creating a transaction.
type CreateTransactionResponse struct {
	Message        string      `json:"message" doc:"Human readable confirmation"`
	Transaction    Transaction `json:"transaction" doc:"The persisted transaction"`
	UpdatedBalance string      `json:"updatedBalance" doc:"The account's balance after the commit"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   CreateTransactionResponse
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	Engine ledgerEngine
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(eng ledgerEngine) *CreateTransactionHandler {
	return &CreateTransactionHandler{Engine: eng}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Creates a transaction and atomically applies its effect to the account balance.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseCreateTransactionInput validates presence and formats, in the order
// the contract fixes: presence, then amount, then references. Reference
// parse failures report the same way as unknown references so IDs never
// leak existence.
func parseCreateTransactionInput(userID uuid.UUID, body CreateTransactionBody) (*actions.CreateTransaction, error) {
	if body.Amount == "" || body.Type == "" || body.CategoryID == "" || body.AccountID == "" {
		return nil, engine.ErrMissingField
	}

	amount, err := decimal.NewFromString(body.Amount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return nil, engine.ErrInvalidAmount
	}

	accountID, err := uuid.FromString(body.AccountID)
	if err != nil {
		return nil, engine.ErrForbidden
	}
	categoryID, err := uuid.FromString(body.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid category", engine.ErrNotFound)
	}

	return &actions.CreateTransaction{
		UserID:      userID,
		AccountID:   accountID,
		CategoryID:  categoryID,
		Type:        transaction.FlowType(body.Type),
		Amount:      amount,
		Description: body.Description,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	userID, ok := identity.FromContext(ctx)
	if !ok {
		return nil, huma.NewError(http.StatusUnauthorized, "missing user identity")
	}

	action, err := parseCreateTransactionInput(userID, input.Body)
	if err != nil {
		return nil, apierror.FromEngine(err)
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	err = h.Engine.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.FromEngine(err)
	}

	if logData != nil {
		logData.AddData("transactionID", action.Created.ID.String())
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body: CreateTransactionResponse{
			Message:        "Transaction added successfully",
			Transaction:    fromRecord(action.Created),
			UpdatedBalance: action.NewBalance.String(),
		},
	}, nil
}
