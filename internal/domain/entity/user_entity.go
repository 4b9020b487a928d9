package entity

import (
	"time"
)

// User is the aggregate root for the forum's user identity.
// Passwords are stored as bcrypt hashes in PasswordHash; identity fields
// are immutable after registration and users are never deleted.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
