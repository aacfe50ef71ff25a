package db

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestIsDuplicateObject(t *testing.T) {
	require.True(t, isDuplicateObject(&pgconn.PgError{Code: "42710"}))
	require.True(t, isDuplicateObject(&pgconn.PgError{Code: "42P07"}))

	// wrapped errors still match
	wrapped := fmt.Errorf("install constraint: %w", &pgconn.PgError{Code: "42710"})
	require.True(t, isDuplicateObject(wrapped))

	// anything else is a real failure and must surface
	require.False(t, isDuplicateObject(&pgconn.PgError{Code: "42501"})) // insufficient_privilege
	require.False(t, isDuplicateObject(fmt.Errorf("connection refused")))
	require.False(t, isDuplicateObject(nil))
}

func TestInstallOverlapConstraintSurfacesErrors(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))

	// sqlite has no CREATE EXTENSION; the failure must come back instead
	// of being dropped on the floor
	require.Error(t, installOverlapConstraint(gdb))
}
