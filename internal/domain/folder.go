package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Folder represents one record in the "folders" collection: a named group of
// uploaded photos guarded by a shared passcode. Folders are upserted by name,
// so Name is the creation key while ID remains the unique directory identifier.
type Folder struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string        `bson:"name" json:"name"`
	Owner      string        `bson:"owner" json:"owner"`
	SharedWith []string      `bson:"sharedWith" json:"sharedWith"`
	Passcode   string        `bson:"passcode" json:"-"` // plaintext shared secret, never serialized to clients
	Photos     []string      `bson:"photos" json:"-"`   // object-store locators, only returned after a passcode reveal
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// PhotoCount reports how many locators the folder references without exposing them.
func (f *Folder) PhotoCount() int {
	return len(f.Photos)
}
