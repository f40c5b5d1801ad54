package repositories

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrDuplicateCode indicates a generated verification code collided with an existing one.
	ErrDuplicateCode = errors.New("verification code already in use")
	// ErrNotPending indicates a certificate request is no longer awaiting review.
	ErrNotPending = errors.New("certificate request is not pending")
)

// mysqlErrDuplicateEntry is the MySQL server error number for a unique key violation.
const mysqlErrDuplicateEntry = 1062

// verificationCodeKey is the name of the unique index on certificates.verification_code.
const verificationCodeKey = "uq_certificates_verification_code"

// isUniqueViolation reports whether err is a MySQL duplicate key error
func isUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDuplicateEntry
	}
	return false
}

// isUniqueViolationOn reports whether err is a duplicate key error on the named index
func isUniqueViolationOn(err error, key string) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDuplicateEntry && strings.Contains(mysqlErr.Message, key)
	}
	return false
}
