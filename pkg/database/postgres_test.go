package database

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUndefinedTable(t *testing.T) {
	err := fmt.Errorf("list banners: %w", &pgconn.PgError{Code: "42P01", Message: `relation "banners" does not exist`})
	assert.True(t, IsUndefinedTable(err))

	assert.False(t, IsUndefinedTable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUndefinedTable(fmt.Errorf("boom")))
	assert.False(t, IsUndefinedTable(nil))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("get: %w", gorm.ErrRecordNotFound)))
	assert.False(t, IsNotFound(fmt.Errorf("boom")))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "42P01"}))
	assert.False(t, IsUniqueViolation(nil))
}
