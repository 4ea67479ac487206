package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents an account in the 'users' collection. The email doubles as
// the identity string recorded on folders (owner / sharedWith entries).
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"password" json:"-"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is the client-safe projection of a User.
type PublicUser struct {
	ID    bson.ObjectID `json:"id"`
	Email string        `json:"email"`
}

// ToPublic strips credential material before a User is serialized to a client.
func (u *User) ToPublic() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Email: u.Email,
	}
}
