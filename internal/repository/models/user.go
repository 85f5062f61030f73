package models

import "time"

// User is a row of the users table.
type User struct {
	ID           string    `db:"ID"`            // ULID
	Username     string    `db:"USERNAME"`      // unique login name
	Email        string    `db:"EMAIL"`
	PasswordHash string    `db:"PASSWORD_HASH"` // bcrypt hash, never the password
	CreatedAt    time.Time `db:"CREATED_AT"`
}
