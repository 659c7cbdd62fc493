// Package user provides user domain models and behaviors.
package user

import (
	"context"
	"time"
)

// User is a registered account. The password hash never leaves the service in JSON.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository defines storage operations for users.
type Repository interface {
	// FindByUsername returns the user or a NOT_FOUND error.
	FindByUsername(ctx context.Context, username string) (*User, error)
	// FindByID returns the user or a NOT_FOUND error.
	FindByID(ctx context.Context, id string) (*User, error)
	// Insert stores a new user and returns its id. A taken username is a CONFLICT error.
	Insert(ctx context.Context, user User) (string, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer signs and verifies access tokens carrying a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}
