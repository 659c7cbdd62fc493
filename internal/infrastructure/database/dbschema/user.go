package dbschema

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"hr-assistant-api/internal/domain/user"
)

// User is the stored account document.
type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Username  string        `bson:"username"`
	Password  string        `bson:"password"`
	CreatedAt time.Time     `bson:"created_at"`
}

// NewSchemaUser converts a domain user into a document.
func NewSchemaUser(u user.User) *User {
	return &User{
		Name:      u.Name,
		Username:  u.Username,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
	}
}

// EtoD converts a document back to the domain user.
func (u *User) EtoD() *user.User {
	if u == nil {
		return nil
	}
	return &user.User{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Username:  u.Username,
		Password:  u.Password,
		CreatedAt: u.CreatedAt.UTC(),
	}
}
