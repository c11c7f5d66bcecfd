package repos

import (
	"database/sql"
	"errors"
	"strings"
)

var (
	// ErrNotFound reports that no row matched the lookup.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate reports a write that violated a unique index.
	ErrDuplicate = errors.New("duplicate key")
)

// mapDBErr folds driver-level failures into the repo error kinds so callers
// can branch with errors.Is instead of sniffing driver strings themselves.
func mapDBErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	return err
}
