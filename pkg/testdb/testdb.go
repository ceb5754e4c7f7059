// Package testdb opens migrated in-memory sqlite databases for tests.
package testdb

import (
	"fmt"
	"regexp"
	"testing"

	"itdocsapi/bootstrap"
	"itdocsapi/schema"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// Open returns a database private to t, migrated for every entity of the
// default registry. It is closed when t finishes.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	return OpenWith(t, schema.Default())
}

// OpenWith is Open for a custom registry.
func OpenWith(t testing.TB, reg *schema.Registry) *gorm.DB {
	t.Helper()

	name := unsafeChars.ReplaceAllString(t.Name(), "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// the in-memory database lives as long as one connection does
	sqlDB.SetMaxIdleConns(4)
	sqlDB.SetConnMaxLifetime(0)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, bootstrap.Migrate(db, reg))
	return db
}
