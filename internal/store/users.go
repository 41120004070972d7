package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PasswordHash returns the stored password hash for email. ok is false when
// the user does not exist.
func (s *Store) PasswordHash(ctx context.Context, email string) (hash string, ok bool, err error) {
	err = s.db.QueryRowContext(ctx, s.Rebind(`SELECT password_hash FROM users WHERE email = ?`), email).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query user credentials: %w", err)
	}
	return hash, true, nil
}
