// Package repotest opens throwaway migrated databases for tests.
package repotest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/music_catalog/internal/models"
	pkgdb "github.com/Skotchmaster/music_catalog/pkg/db"
)

// NewDB returns an in-memory sqlite database private to t with every table migrated.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := pkgdb.Open(context.Background(), pkgdb.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	if err := pkgdb.Migrate(db, models.All()...); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
