package transaction

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-server/internal/engine"
	"github.com/carson-networks/finance-server/internal/engine/actions"
	"github.com/carson-networks/finance-server/internal/identity"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// mockEngine is a mock for ledgerEngine.
type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) Process(ctx context.Context, action engine.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

// newCreateTestAPI registers the handler against a humatest API, with the
// identity middleware in front like the real route tree.
func newCreateTestAPI(t *testing.T, eng ledgerEngine) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(identity.Middleware(api))
	NewCreateTransactionHandler(eng).Register(api)
	return api
}

func userHeader(userID uuid.UUID) string {
	return identity.UserHeader + ": " + userID.String()
}

// -- parseCreateTransactionInput unit tests --

func TestParseCreateTransactionInput_ValidInput(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())

	action, err := parseCreateTransactionInput(userID, CreateTransactionBody{
		Amount:      "123.45",
		Type:        "expense",
		CategoryID:  categoryID.String(),
		AccountID:   accountID.String(),
		Description: "Groceries",
	})
	assert.NoError(t, err)
	assert.Equal(t, userID, action.UserID)
	assert.Equal(t, accountID, action.AccountID)
	assert.Equal(t, categoryID, action.CategoryID)
	assert.Equal(t, transaction.FlowExpense, action.Type)
	assert.True(t, action.Amount.Equal(decimal.RequireFromString("123.45")))
	assert.Equal(t, "Groceries", action.Description)
}

func TestParseCreateTransactionInput_MissingFields(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	bodies := []CreateTransactionBody{
		{Type: "expense", CategoryID: uuid.Must(uuid.NewV4()).String(), AccountID: uuid.Must(uuid.NewV4()).String()},
		{Amount: "10", CategoryID: uuid.Must(uuid.NewV4()).String(), AccountID: uuid.Must(uuid.NewV4()).String()},
		{Amount: "10", Type: "expense", AccountID: uuid.Must(uuid.NewV4()).String()},
		{Amount: "10", Type: "expense", CategoryID: uuid.Must(uuid.NewV4()).String()},
	}
	for _, body := range bodies {
		_, err := parseCreateTransactionInput(userID, body)
		assert.ErrorIs(t, err, engine.ErrMissingField)
	}
}

func TestParseCreateTransactionInput_NonPositiveAmount(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	for _, amount := range []string{"0", "-5.00", "not-a-decimal"} {
		_, err := parseCreateTransactionInput(userID, CreateTransactionBody{
			Amount:     amount,
			Type:       "income",
			CategoryID: uuid.Must(uuid.NewV4()).String(),
			AccountID:  uuid.Must(uuid.NewV4()).String(),
		})
		assert.ErrorIs(t, err, engine.ErrInvalidAmount)
	}
}

func TestParseCreateTransactionInput_MalformedReferences(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	// A malformed account ID reports like an unowned one.
	_, err := parseCreateTransactionInput(userID, CreateTransactionBody{
		Amount:     "10",
		Type:       "income",
		CategoryID: uuid.Must(uuid.NewV4()).String(),
		AccountID:  "not-a-uuid",
	})
	assert.ErrorIs(t, err, engine.ErrForbidden)

	// A malformed category ID reports like a missing one.
	_, err = parseCreateTransactionInput(userID, CreateTransactionBody{
		Amount:     "10",
		Type:       "income",
		CategoryID: "not-a-uuid",
		AccountID:  uuid.Must(uuid.NewV4()).String(),
	})
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

// -- HTTP tests (full Huma stack via humatest) --

func TestHTTP_CreateTransaction_Success(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())
	txID := uuid.Must(uuid.NewV4())
	now := time.Now().UTC().Truncate(time.Second)

	mockEng := new(mockEngine)
	mockEng.On("Process", mock.Anything, mock.MatchedBy(func(action engine.IAction) bool {
		create, ok := action.(*actions.CreateTransaction)
		return ok &&
			create.UserID == userID &&
			create.AccountID == accountID &&
			create.CategoryID == categoryID &&
			create.Amount.Equal(decimal.RequireFromString("12.50"))
	})).Run(func(args mock.Arguments) {
		create := args.Get(1).(*actions.CreateTransaction)
		create.Created = &transaction.Transaction{
			ID:          txID,
			UserID:      userID,
			AccountID:   accountID,
			CategoryID:  categoryID,
			Type:        transaction.FlowExpense,
			Amount:      decimal.RequireFromString("12.50"),
			Description: "Coffee",
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		create.NewBalance = decimal.RequireFromString("87.50")
	}).Return(nil)

	resp := newCreateTestAPI(t, mockEng).Post("/v1/transaction", userHeader(userID), CreateTransactionBody{
		Amount:      "12.50",
		Type:        "expense",
		CategoryID:  categoryID.String(),
		AccountID:   accountID.String(),
		Description: "Coffee",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateTransactionResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Transaction added successfully", body.Message)
	assert.Equal(t, txID.String(), body.Transaction.ID)
	assert.Equal(t, "87.50", body.UpdatedBalance)
	mockEng.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_MissingIdentity(t *testing.T) {
	mockEng := new(mockEngine)

	resp := newCreateTestAPI(t, mockEng).Post("/v1/transaction", CreateTransactionBody{
		Amount:     "10.00",
		Type:       "income",
		CategoryID: uuid.Must(uuid.NewV4()).String(),
		AccountID:  uuid.Must(uuid.NewV4()).String(),
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	mockEng.AssertNotCalled(t, "Process")
}

func TestHTTP_CreateTransaction_MissingRequiredFields(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mockEng := new(mockEngine)

	resp := newCreateTestAPI(t, mockEng).Post("/v1/transaction", userHeader(userID), CreateTransactionBody{
		AccountID: uuid.Must(uuid.NewV4()).String(),
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockEng.AssertNotCalled(t, "Process")
}

func TestHTTP_CreateTransaction_InvalidAmount(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mockEng := new(mockEngine)

	resp := newCreateTestAPI(t, mockEng).Post("/v1/transaction", userHeader(userID), CreateTransactionBody{
		Amount:     "-4.00",
		Type:       "expense",
		CategoryID: uuid.Must(uuid.NewV4()).String(),
		AccountID:  uuid.Must(uuid.NewV4()).String(),
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockEng.AssertNotCalled(t, "Process")
}

func TestHTTP_CreateTransaction_UnownedAccount(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mockEng := new(mockEngine)
	mockEng.On("Process", mock.Anything, mock.Anything).Return(engine.ErrForbidden)

	resp := newCreateTestAPI(t, mockEng).Post("/v1/transaction", userHeader(userID), CreateTransactionBody{
		Amount:     "10.00",
		Type:       "expense",
		CategoryID: uuid.Must(uuid.NewV4()).String(),
		AccountID:  uuid.Must(uuid.NewV4()).String(),
	})

	assert.Equal(t, http.StatusForbidden, resp.Code)
	mockEng.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_TypeMismatch(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mockEng := new(mockEngine)
	mockEng.On("Process", mock.Anything, mock.Anything).
		Return(engine.TypeMismatch("income", "expense"))

	resp := newCreateTestAPI(t, mockEng).Post("/v1/transaction", userHeader(userID), CreateTransactionBody{
		Amount:     "10.00",
		Type:       "expense",
		CategoryID: uuid.Must(uuid.NewV4()).String(),
		AccountID:  uuid.Must(uuid.NewV4()).String(),
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockEng.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_InsufficientBalance(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mockEng := new(mockEngine)
	mockEng.On("Process", mock.Anything, mock.Anything).Return(engine.ErrInsufficientBalance)

	resp := newCreateTestAPI(t, mockEng).Post("/v1/transaction", userHeader(userID), CreateTransactionBody{
		Amount:     "999999.00",
		Type:       "expense",
		CategoryID: uuid.Must(uuid.NewV4()).String(),
		AccountID:  uuid.Must(uuid.NewV4()).String(),
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockEng.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_StorageError(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	mockEng := new(mockEngine)
	mockEng.On("Process", mock.Anything, mock.Anything).Return(engine.ErrStorage)

	resp := newCreateTestAPI(t, mockEng).Post("/v1/transaction", userHeader(userID), CreateTransactionBody{
		Amount:     "10.00",
		Type:       "income",
		CategoryID: uuid.Must(uuid.NewV4()).String(),
		AccountID:  uuid.Must(uuid.NewV4()).String(),
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockEng.AssertExpectations(t)
}
