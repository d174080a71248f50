package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingMigrations(t *testing.T) {
	all, err := pendingMigrations(map[string]bool{})
	require.NoError(t, err)
	require.NotEmpty(t, all)
	assert.Equal(t, "0001_export_log.sql", all[0])
	assert.IsNonDecreasing(t, all)

	applied := make(map[string]bool, len(all))
	for _, f := range all {
		applied[f] = true
	}

	none, err := pendingMigrations(applied)
	require.NoError(t, err)
	assert.Empty(t, none)
}
