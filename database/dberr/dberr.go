// Package dberr classifies store failures the application recovers from.
//
// Classification is done on SQLSTATE codes when the postgres driver surfaces
// a structured error, never on rendered message text; the sqlite driver used
// in tests exposes no codes, so its two known message shapes are matched as a
// fallback.
package dberr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	// SQLSTATE class 22: data exception (invalid text representation etc.)
	classDataException = "22"
	// SQLSTATE 23505: unique_violation
	codeUniqueViolation = "23505"
)

// IsUniqueViolation 判断是否为唯一约束冲突
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// sqlite3 驱动不提供结构化错误码
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsInvalidInput 判断是否为输入格式错误（类型或取值被存储层拒绝）
func IsInvalidInput(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, classDataException)
	}

	if errors.Is(err, gorm.ErrInvalidData) || errors.Is(err, gorm.ErrInvalidValue) {
		return true
	}

	return strings.Contains(err.Error(), "datatype mismatch")
}
