package db_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflash/internal/db"
)

func TestOpen_AppliesMigrationsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wordflash.db")
	ctx := context.Background()

	first, err := db.Open(path)
	require.NoError(t, err)
	versions, err := first.AppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_word_stats_index.sql"}, versions)
	require.NoError(t, first.Close())

	second, err := db.Open(path)
	require.NoError(t, err)
	defer second.Close()
	again, err := second.AppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, versions, again)
}

func TestTx_RollsBackOnError(t *testing.T) {
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	defer database.Close()
	ctx := context.Background()

	boom := errors.New("boom")
	err = db.Tx(ctx, database.DB, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO words (position, word) VALUES (0, 'apple')`)
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, database.GetContext(ctx, &count, `SELECT COUNT(*) FROM words`))
	assert.Zero(t, count)
}

func TestTx_Commits(t *testing.T) {
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	defer database.Close()
	ctx := context.Background()

	err = db.Tx(ctx, database.DB, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO words (position, word) VALUES (0, 'apple')`)
		return err
	})
	require.NoError(t, err)

	var word string
	require.NoError(t, database.GetContext(ctx, &word, `SELECT word FROM words WHERE position = 0`))
	assert.Equal(t, "apple", word)
}

func TestStageConstraint(t *testing.T) {
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO words (position, word, stage) VALUES (0, 'apple', 4)`)
	assert.Error(t, err)
}
