package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bookie/repository/testutil"
)

// seedMember creates the guild, user, and membership rows most tests need.
func seedMember(t *testing.T, testDB *testutil.TestDatabase, guildID, userID int64, units decimal.Decimal) {
	t.Helper()
	ctx := context.Background()

	_, err := NewGuildRepository(testDB.DB).Upsert(ctx, guildID, "Test Guild")
	require.NoError(t, err)

	_, err = NewUserRepository(testDB.DB).Create(ctx, userID, "testuser", decimal.NewFromInt(1000))
	require.NoError(t, err)

	_, err = NewGuildUserRepository(testDB.DB).Create(ctx, guildID, userID, units)
	require.NoError(t, err)
}
