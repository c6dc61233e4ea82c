package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/identity"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/storage/account"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// ListTransactionsInput is the Huma input for listing transactions. All
// filters are optional and combine with AND.
type ListTransactionsInput struct {
	AccountID  string `query:"accountId" doc:"Only transactions on this account"`
	CategoryID string `query:"categoryId" doc:"Only transactions with this category"`
	Type       string `query:"type" doc:"income or expense"`
	StartDate  string `query:"startDate" doc:"RFC3339 lower bound on creation time"`
	EndDate    string `query:"endDate" doc:"RFC3339 upper bound on creation time"`
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Message      string        `json:"message" doc:"Human readable confirmation"`
	Transactions []Transaction `json:"transactions" doc:"Matching transactions, newest first"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, userID uuid.UUID, filter transaction.Filter) ([]*transaction.Transaction, error)
}

// accountGetter is the interface for checking account ownership.
type accountGetter interface {
	GetAccount(ctx context.Context, id, userID uuid.UUID) (*account.Account, error)
}

// ListTransactionsHandler handles GET /v1/transaction.
type ListTransactionsHandler struct {
	TransactionService transactionLister
	AccountService     accountGetter
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(transactions transactionLister, accounts accountGetter) *ListTransactionsHandler {
	return &ListTransactionsHandler{
		TransactionService: transactions,
		AccountService:     accounts,
	}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transaction",
		Summary:     "List transactions",
		Description: "Returns the acting user's transactions, optionally filtered by account, category, type, and date range.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseListTransactionsInput builds the ledger filter from the query
// parameters. Malformed UUIDs and dates are rejected rather than silently
// dropped.
func parseListTransactionsInput(input *ListTransactionsInput) (transaction.Filter, error) {
	var filter transaction.Filter

	if input.AccountID != "" {
		accountID, err := uuid.FromString(input.AccountID)
		if err != nil {
			return filter, huma.NewError(http.StatusForbidden, "unauthorized account access")
		}
		filter.AccountID = &accountID
	}
	if input.CategoryID != "" {
		categoryID, err := uuid.FromString(input.CategoryID)
		if err != nil {
			return filter, huma.NewError(http.StatusBadRequest, "invalid categoryId")
		}
		filter.CategoryID = &categoryID
	}
	if input.Type != "" {
		flowType := transaction.FlowType(input.Type)
		if !flowType.Valid() {
			return filter, huma.NewError(http.StatusBadRequest, "type must be income or expense")
		}
		filter.Type = &flowType
	}
	if input.StartDate != "" {
		startDate, err := time.Parse(time.RFC3339, input.StartDate)
		if err != nil {
			return filter, huma.NewError(http.StatusBadRequest, "invalid startDate", err)
		}
		filter.StartDate = &startDate
	}
	if input.EndDate != "" {
		endDate, err := time.Parse(time.RFC3339, input.EndDate)
		if err != nil {
			return filter, huma.NewError(http.StatusBadRequest, "invalid endDate", err)
		}
		filter.EndDate = &endDate
	}

	return filter, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	userID, ok := identity.FromContext(ctx)
	if !ok {
		return nil, huma.NewError(http.StatusUnauthorized, "missing user identity")
	}

	filter, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	// An account filter must name an account the user owns; absent and
	// not-owned report identically.
	if filter.AccountID != nil {
		owned, err := h.AccountService.GetAccount(ctx, *filter.AccountID, userID)
		if err != nil {
			return nil, huma.NewError(http.StatusInternalServerError, "failed to list transactions", err)
		}
		if owned == nil {
			return nil, huma.NewError(http.StatusForbidden, "unauthorized account access")
		}
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	records, err := h.TransactionService.ListTransactions(ctx, userID, filter)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list transactions", err)
	}

	if logData != nil {
		logData.AddData("transactionCount", len(records))
	}

	resp := ListTransactionsResponseBody{
		Message:      "Transactions loaded successfully",
		Transactions: make([]Transaction, len(records)),
	}
	for i, record := range records {
		resp.Transactions[i] = fromRecord(record)
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
