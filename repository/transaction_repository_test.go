package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookie/models"
	"bookie/repository/testutil"
)

func TestTransactionRepository_Record(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	repo := NewTransactionRepository(testDB.DB)

	seedMember(t, testDB, 100, 1, decimal.NewFromInt(100))

	tx := testutil.CreateTestTransaction(100, 1, decimal.RequireFromString("-5"), models.TransactionTypeBetPlaced)
	require.NoError(t, repo.Record(ctx, tx))

	assert.NotZero(t, tx.ID)
	assert.False(t, tx.CreatedAt.IsZero())

	t.Run("unknown member rejected", func(t *testing.T) {
		tx := testutil.CreateTestTransaction(100, 424242, decimal.NewFromInt(1), models.TransactionTypeAdjust)
		assert.Error(t, repo.Record(ctx, tx))
	})
}

func TestTransactionRepository_ListByUser(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	repo := NewTransactionRepository(testDB.DB)

	seedMember(t, testDB, 200, 2, decimal.NewFromInt(100))

	amounts := []string{"100", "-5", "4.55"}
	for i, a := range amounts {
		tx := testutil.CreateTestTransaction(200, 2, decimal.RequireFromString(a), models.TransactionTypeAdjust)
		tx.Description = fmt.Sprintf("entry %d", i)
		require.NoError(t, repo.Record(ctx, tx))
	}

	txs, err := repo.ListByUser(ctx, 200, 2, 10)
	require.NoError(t, err)
	require.Len(t, txs, 3)

	// Newest first
	assert.Equal(t, "entry 2", txs[0].Description)
	assert.Equal(t, "entry 0", txs[2].Description)

	t.Run("limit respected", func(t *testing.T) {
		txs, err := repo.ListByUser(ctx, 200, 2, 2)
		require.NoError(t, err)
		assert.Len(t, txs, 2)
	})
}

// A long alternating sequence of credits and debits must sum back to zero
// exactly. Floats would drift; NUMERIC and decimal.Decimal must not.
func TestTransactionRepository_NoDecimalDrift(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	repo := NewTransactionRepository(testDB.DB)

	seedMember(t, testDB, 300, 3, decimal.NewFromInt(100))

	step := decimal.RequireFromString("0.01")
	for i := 0; i < 100; i++ {
		amount := step
		if i%2 == 1 {
			amount = step.Neg()
		}
		tx := testutil.CreateTestTransaction(300, 3, amount, models.TransactionTypeAdjust)
		require.NoError(t, repo.Record(ctx, tx))
	}

	txs, err := repo.ListByUser(ctx, 300, 3, 200)
	require.NoError(t, err)
	require.Len(t, txs, 100)

	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.Amount)
	}
	assert.True(t, sum.IsZero(), "ledger drifted to %s", sum)
}
