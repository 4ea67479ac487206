package store

import (
	"context"
	"errors"
	"io"

	"photodrive/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Standard errors returned by the store layer. This allows the service layer
// to handle specific database errors without being coupled to the database
// implementation.
var (
	ErrNotFound = errors.New("requested item not found")
	ErrConflict = errors.New("item already exists")
)

// UserStore defines the interface for user account persistence.
type UserStore interface {
	// Create inserts a new user into the database.
	Create(ctx context.Context, user *domain.User) error

	// FindByEmail retrieves a user by their email address. It returns
	// store.ErrNotFound if no user is found.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID retrieves a user by their unique ID. It returns
	// store.ErrNotFound if no user is found.
	FindByID(ctx context.Context, id bson.ObjectID) (*domain.User, error)
}

// FolderFields carries the fields written by an upsert-by-name. Name, Owner
// and Passcode overwrite any existing record under the same name and Photos
// are appended to it, reproducing the merge-upsert the directory exposes:
// a second owner upserting the same name silently takes over the record.
type FolderFields struct {
	Name     string
	Owner    string
	Passcode string
	Photos   []string
}

// FolderStore defines the interface for the folder directory.
type FolderStore interface {
	// ListOwnedOrShared returns the union of folders the identity owns and
	// folders shared with it. Owned entries come first.
	ListOwnedOrShared(ctx context.Context, identity string) ([]*domain.Folder, error)

	// FindByNamePrefix runs a lexicographic range scan over folder names.
	// The scan is unauthenticated: it matches folders regardless of owner,
	// and callers must filter the result through the access rules.
	FindByNamePrefix(ctx context.Context, prefix string) ([]*domain.Folder, error)

	// UpsertByName creates or merges a folder record keyed by name and
	// returns its id. A second upsert of the same name overwrites passcode
	// and appends photos even when the caller is a different owner.
	UpsertByName(ctx context.Context, fields FolderFields) (bson.ObjectID, error)

	// GetByID fetches a single folder. It returns store.ErrNotFound if no
	// folder exists under that id.
	GetByID(ctx context.Context, id bson.ObjectID) (*domain.Folder, error)

	// AddToSharedWith grants an identity visibility. Idempotent set-add.
	AddToSharedWith(ctx context.Context, id bson.ObjectID, identity string) error

	// RemoveFromSharedWith revokes a previously granted identity.
	RemoveFromSharedWith(ctx context.Context, id bson.ObjectID, identity string) error

	// Delete removes the folder record. Stored photo objects are not
	// touched; the caller decides whether to orphan them.
	Delete(ctx context.Context, id bson.ObjectID) error
}

// PhotoStore defines the interface for the photo object store. Objects are
// addressed by path ("photos/{folder}/{file}"); the locator returned by Put is
// the durable retrieval URL recorded on the folder record.
type PhotoStore interface {
	// Put streams an object into storage and returns its locator. Progress
	// is reported as a fraction of the declared size in [0,1]; a nil
	// progress func disables reporting.
	Put(ctx context.Context, path string, size int64, source io.Reader, progress func(float64)) (string, error)

	// Open returns a reader over a stored object and its length. It returns
	// store.ErrNotFound if no object exists under that path.
	Open(ctx context.Context, path string) (io.ReadCloser, int64, error)
}
