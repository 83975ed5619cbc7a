package repository

import (
	"database/sql"
	"errors"
)

// HandleNotFound collapses sql.ErrNoRows into a nil result without an error.
// Find* methods return nil for a missing row and let the service layer decide
// whether that absence is a not_found failure or a normal state (an absent
// contribution, an unknown login email).
func HandleNotFound[T any](result *T, err error) (*T, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
