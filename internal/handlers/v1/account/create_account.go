package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/identity"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/storage/account"
)

// CreateAccountBody is the request body for creating an account.
type CreateAccountBody struct {
	Name    string `json:"name,omitempty" doc:"Account name"`
	Type    string `json:"type,omitempty" doc:"savings, current, credit, cash, investment, loan, or other"`
	Balance string `json:"balance,omitempty" doc:"Opening balance (e.g. '0' or '1234.56'), defaults to 0"`
}

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	Body CreateAccountBody
}

// CreateAccountResponse is the response body for creating an account.
type CreateAccountResponse struct {
	Message string  `json:"message" doc:"Human readable confirmation"`
	Account Account `json:"account" doc:"The created account"`
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   CreateAccountResponse
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	AccountService accountService
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(svc accountService) *CreateAccountHandler {
	return &CreateAccountHandler{AccountService: svc}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-account",
		Method:      http.MethodPost,
		Path:        "/v1/account",
		Summary:     "Create an account",
		Description: "Creates a new account with the given name, type, and opening balance.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func parseCreateAccountInput(body CreateAccountBody) (account.AccountCreate, error) {
	if body.Name == "" || body.Type == "" {
		return account.AccountCreate{}, huma.NewError(http.StatusBadRequest, "name and type are required")
	}

	accountType := account.Type(body.Type)
	if !accountType.Valid() {
		return account.AccountCreate{}, huma.NewError(http.StatusBadRequest, "invalid account type")
	}

	balanceStr := body.Balance
	if balanceStr == "" {
		balanceStr = "0"
	}
	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return account.AccountCreate{}, huma.NewError(http.StatusBadRequest, "invalid balance", err)
	}
	if balance.IsNegative() {
		return account.AccountCreate{}, huma.NewError(http.StatusBadRequest, "balance must not be negative")
	}

	return account.AccountCreate{
		Name:    body.Name,
		Type:    accountType,
		Balance: balance,
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	userID, ok := identity.FromContext(ctx)
	if !ok {
		return nil, huma.NewError(http.StatusUnauthorized, "missing user identity")
	}

	create, err := parseCreateAccountInput(input.Body)
	if err != nil {
		return nil, err
	}
	create.UserID = userID

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createAccountMs")
	}
	created, err := h.AccountService.CreateAccount(ctx, create)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create account", err)
	}

	if logData != nil {
		logData.AddData("accountID", created.ID.String())
	}

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body: CreateAccountResponse{
			Message: "Account created successfully",
			Account: fromRecord(created),
		},
	}, nil
}
