package actions

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-server/internal/engine"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

func TestRelabelTransaction_Success(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	record := testLedgerRecord(userID, accountID, transaction.FlowExpense, "10.00")
	newCat := testCategory(userID, category.TypeExpense)
	writer, tables := newTestWriter()

	action := &RelabelTransaction{
		UserID:        userID,
		TransactionID: record.ID,
		AccountID:     accountID,
		CategoryID:    &newCat.ID,
	}

	tables.categories.On("FindOwned", mock.Anything, newCat.ID, userID).Return(newCat, nil)
	tables.transactions.On("FindOwned", mock.Anything, record.ID, userID, accountID).Return(record, nil)
	tables.transactions.On("UpdateCategory", mock.Anything, record.ID, newCat.ID).Return(true, nil)

	err := action.Perform(context.Background(), writer)
	assert.NoError(t, err)
	assert.NotNil(t, action.Updated)
	assert.Equal(t, newCat.ID, action.Updated.CategoryID)
	tables.transactions.AssertExpectations(t)
}

func TestRelabelTransaction_NoCategoryChange(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	record := testLedgerRecord(userID, accountID, transaction.FlowIncome, "25.00")
	writer, tables := newTestWriter()

	action := &RelabelTransaction{
		UserID:        userID,
		TransactionID: record.ID,
		AccountID:     accountID,
	}

	tables.transactions.On("FindOwned", mock.Anything, record.ID, userID, accountID).Return(record, nil)

	err := action.Perform(context.Background(), writer)
	assert.NoError(t, err)
	assert.Equal(t, record, action.Updated)
	tables.categories.AssertNotCalled(t, "FindOwned")
	tables.transactions.AssertNotCalled(t, "UpdateCategory")
}

func TestRelabelTransaction_UnknownCategory(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())
	writer, tables := newTestWriter()

	action := &RelabelTransaction{
		UserID:        userID,
		TransactionID: uuid.Must(uuid.NewV4()),
		AccountID:     uuid.Must(uuid.NewV4()),
		CategoryID:    &categoryID,
	}

	tables.categories.On("FindOwned", mock.Anything, categoryID, userID).Return(nil, nil)

	err := action.Perform(context.Background(), writer)
	assert.ErrorIs(t, err, engine.ErrNotFound)
	assert.Contains(t, err.Error(), "invalid category")
	// The category check comes before the record lookup.
	tables.transactions.AssertNotCalled(t, "FindOwned")
}

func TestRelabelTransaction_RecordNotFound(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	txID := uuid.Must(uuid.NewV4())
	newCat := testCategory(userID, category.TypeExpense)
	writer, tables := newTestWriter()

	action := &RelabelTransaction{
		UserID:        userID,
		TransactionID: txID,
		AccountID:     accountID,
		CategoryID:    &newCat.ID,
	}

	tables.categories.On("FindOwned", mock.Anything, newCat.ID, userID).Return(newCat, nil)
	tables.transactions.On("FindOwned", mock.Anything, txID, userID, accountID).Return(nil, nil)

	err := action.Perform(context.Background(), writer)
	assert.ErrorIs(t, err, engine.ErrNotFound)
	assert.Contains(t, err.Error(), "transaction not found")
}

func TestRelabelTransaction_ConcurrentlyDeleted(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	record := testLedgerRecord(userID, accountID, transaction.FlowExpense, "10.00")
	newCat := testCategory(userID, category.TypeExpense)
	writer, tables := newTestWriter()

	action := &RelabelTransaction{
		UserID:        userID,
		TransactionID: record.ID,
		AccountID:     accountID,
		CategoryID:    &newCat.ID,
	}

	// The record was deleted after our read, so the update touches zero
	// rows. The caller must see not-found, not a stale success.
	tables.categories.On("FindOwned", mock.Anything, newCat.ID, userID).Return(newCat, nil)
	tables.transactions.On("FindOwned", mock.Anything, record.ID, userID, accountID).Return(record, nil)
	tables.transactions.On("UpdateCategory", mock.Anything, record.ID, newCat.ID).Return(false, nil)

	err := action.Perform(context.Background(), writer)
	assert.ErrorIs(t, err, engine.ErrNotFound)
	assert.Contains(t, err.Error(), "transaction not found")
	assert.Nil(t, action.Updated)
}

func TestRelabelTransaction_CrossTypeForbidden(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	record := testLedgerRecord(userID, accountID, transaction.FlowExpense, "10.00")
	incomeCat := testCategory(userID, category.TypeIncome)
	writer, tables := newTestWriter()

	action := &RelabelTransaction{
		UserID:        userID,
		TransactionID: record.ID,
		AccountID:     accountID,
		CategoryID:    &incomeCat.ID,
	}

	tables.categories.On("FindOwned", mock.Anything, incomeCat.ID, userID).Return(incomeCat, nil)
	tables.transactions.On("FindOwned", mock.Anything, record.ID, userID, accountID).Return(record, nil)

	err := action.Perform(context.Background(), writer)
	assert.ErrorIs(t, err, engine.ErrTypeMismatch)
	tables.transactions.AssertNotCalled(t, "UpdateCategory")
}
