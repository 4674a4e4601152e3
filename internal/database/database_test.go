package database

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestDB points the package at a fresh in-memory database. The single
// shared connection keeps the :memory: database alive across queries.
func setupTestDB(t *testing.T) {
	t.Helper()
	if DB == nil {
		require.NoError(t, Open("sqlite3", ":memory:"))
	}
	require.NoError(t, Reset())
}
