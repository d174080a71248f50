//go:build integration

package store_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/MrJamesThe3rd/presence/internal/database"
	"github.com/MrJamesThe3rd/presence/internal/exportlog"
	"github.com/MrJamesThe3rd/presence/internal/exportlog/store"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_DB":       "presence",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("docker not available, skipping integration test: %v", err)
	}

	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("postgres://test:test@%s:%s/presence?sslmode=disable", host, port.Port())

	db, err := database.New(ctx, connStr)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	applied, err := database.Migrate(ctx, db)
	require.NoError(t, err)
	require.NotEmpty(t, applied)

	again, err := database.Migrate(ctx, db)
	require.NoError(t, err)
	require.Empty(t, again)

	return db
}

func TestStore(t *testing.T) {
	db := setupDB(t)
	s := store.New(db)
	ctx := context.Background()

	first := &exportlog.Entry{Filename: "attendance-today-2025-03-14.csv", Format: "csv", Layout: "actions", Scope: "today", Rows: 3, Username: "admin"}
	require.NoError(t, s.CreateEntry(ctx, first))
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := &exportlog.Entry{Filename: "attendance-all-time-paired-2025-03-14.xlsx", Format: "xlsx", Layout: "paired", Scope: "all", Rows: 10, Username: "auditor"}
	require.NoError(t, s.CreateEntry(ctx, second))

	t.Run("Get", func(t *testing.T) {
		got, err := s.GetEntry(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first.Filename, got.Filename)
		assert.Equal(t, 3, got.Rows)

		_, err = s.GetEntry(ctx, uuid.New())
		assert.ErrorIs(t, err, exportlog.ErrNotFound)
	})

	t.Run("List", func(t *testing.T) {
		all, err := s.ListEntries(ctx, exportlog.ListFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)

		limited, err := s.ListEntries(ctx, exportlog.ListFilter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, limited, 1)

		auditor := "auditor"
		mine, err := s.ListEntries(ctx, exportlog.ListFilter{Username: &auditor})
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, second.ID, mine[0].ID)
	})

	t.Run("RejectsEmptyExport", func(t *testing.T) {
		err := s.CreateEntry(ctx, &exportlog.Entry{Filename: "x.csv", Format: "csv", Layout: "actions", Scope: "today"})
		assert.Error(t, err)
	})
}
