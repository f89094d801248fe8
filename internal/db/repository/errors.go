package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicate     = errors.New("record already exists")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrItemNotInCart = errors.New("item not in cart")
	ErrOutOfRange    = errors.New("value out of range")
)

// uniqueViolation is the Postgres SQLSTATE for unique index violations
const uniqueViolation = "23505"

// numericOutOfRange is raised when a value overflows its integer column
const numericOutOfRange = "22003"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func isOutOfRange(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == numericOutOfRange
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
