package dberr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"postgres unique_violation", &pgconn.PgError{Code: "23505"}, true},
		{"postgres foreign_key_violation", &pgconn.PgError{Code: "23503"}, false},
		{"wrapped postgres error", fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505"}), true},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, true},
		{"sqlite message", errors.New("UNIQUE constraint failed: albums.name, albums.username"), true},
		{"unrelated", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err))
		})
	}
}

func TestIsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"postgres invalid_text_representation", &pgconn.PgError{Code: "22P02"}, true},
		{"postgres numeric_value_out_of_range", &pgconn.PgError{Code: "22003"}, true},
		{"postgres unique_violation", &pgconn.PgError{Code: "23505"}, false},
		{"wrapped postgres error", fmt.Errorf("query: %w", &pgconn.PgError{Code: "22P02"}), true},
		{"gorm invalid data", gorm.ErrInvalidData, true},
		{"sqlite message", errors.New("datatype mismatch"), true},
		{"unrelated", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInvalidInput(tt.err))
		})
	}
}
