// Package pgtest opens throwaway databases for tests that need real
// repositories without a PostgreSQL server.
package pgtest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenSQLite returns a migrated in-memory database private to the test.
// SQLite ignores row locks, so tests using it cover data flow, not locking.
func OpenSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
