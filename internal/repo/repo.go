package repo

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

type Page struct {
	Limit  int
	Offset int
}

// IsDuplicate reports whether err is a unique constraint violation from
// either supported driver.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}

// NameKey is the folded form used by case-insensitive unique names.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *GormRepo) exists(db *gorm.DB, model any, column, value string) (bool, error) {
	var count int64
	if err := db.Model(model).Where(column+" = ?", value).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
