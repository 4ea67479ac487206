package mongo

import (
	"context"
	"errors"
	"time"

	"photodrive/internal/domain"
	"photodrive/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const folderCollection = "folders"

// Firestore-style upper bound for a name prefix range scan: a codepoint above
// any character that appears in folder names.
const prefixRangeCeiling = ""

// FolderStore is the MongoDB implementation of the store.FolderStore interface.
type FolderStore struct {
	db *mongo.Database
}

// NewFolderStore creates a new FolderStore.
func NewFolderStore(db *mongo.Database) *FolderStore {
	return &FolderStore{db: db}
}

// ListOwnedOrShared returns the union of folders owned by the identity and
// folders whose sharedWith array contains it. The two predicates cannot both
// match the same record under normal use, so the union carries no duplicates.
func (s *FolderStore) ListOwnedOrShared(ctx context.Context, identity string) ([]*domain.Folder, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"owner": identity},
			bson.M{"sharedWith": identity},
		},
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "owner", Value: 1},
		{Key: "createdAt", Value: -1},
	})

	cursor, err := s.db.Collection(folderCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var folders []*domain.Folder
	if err := cursor.All(ctx, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// FindByNamePrefix runs a lexicographic range scan over folder names. The scan
// covers all folders regardless of owner; callers must filter the result
// through the access rules before returning it to a client.
func (s *FolderStore) FindByNamePrefix(ctx context.Context, prefix string) ([]*domain.Folder, error) {
	filter := bson.M{
		"name": bson.M{
			"$gte": prefix,
			"$lte": prefix + prefixRangeCeiling,
		},
	}

	cursor, err := s.db.Collection(folderCollection).Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var folders []*domain.Folder
	if err := cursor.All(ctx, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// UpsertByName creates or merges the folder record keyed by name. Passcode and
// owner overwrite whatever is already there and photos are appended, so a
// second upload to the same name takes the record over.
func (s *FolderStore) UpsertByName(ctx context.Context, fields store.FolderFields) (bson.ObjectID, error) {
	now := time.Now()

	update := bson.M{
		"$set": bson.M{
			"name":      fields.Name,
			"owner":     fields.Owner,
			"passcode":  fields.Passcode,
			"updatedAt": now,
		},
		"$push": bson.M{
			"photos": bson.M{"$each": fields.Photos},
		},
		"$setOnInsert": bson.M{
			"sharedWith": bson.A{},
			"createdAt":  now,
		},
	}

	opts := options.UpdateOne().SetUpsert(true)
	res, err := s.db.Collection(folderCollection).UpdateOne(ctx, bson.M{"name": fields.Name}, update, opts)
	if err != nil {
		return bson.ObjectID{}, err
	}

	if res.UpsertedID != nil {
		return res.UpsertedID.(bson.ObjectID), nil
	}

	// Merged into an existing record; read its id back.
	folder, err := s.getByName(ctx, fields.Name)
	if err != nil {
		return bson.ObjectID{}, err
	}
	return folder.ID, nil
}

func (s *FolderStore) getByName(ctx context.Context, name string) (*domain.Folder, error) {
	var folder domain.Folder
	err := s.db.Collection(folderCollection).FindOne(ctx, bson.M{"name": name}).Decode(&folder)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &folder, nil
}

// GetByID fetches a single folder by id.
func (s *FolderStore) GetByID(ctx context.Context, id bson.ObjectID) (*domain.Folder, error) {
	var folder domain.Folder
	err := s.db.Collection(folderCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&folder)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &folder, nil
}

// AddToSharedWith grants the identity visibility via an idempotent $addToSet.
func (s *FolderStore) AddToSharedWith(ctx context.Context, id bson.ObjectID, identity string) error {
	update := bson.M{
		"$addToSet": bson.M{"sharedWith": identity},
		"$set":      bson.M{"updatedAt": time.Now()},
	}

	res, err := s.db.Collection(folderCollection).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// RemoveFromSharedWith revokes a previously granted identity.
func (s *FolderStore) RemoveFromSharedWith(ctx context.Context, id bson.ObjectID, identity string) error {
	update := bson.M{
		"$pull": bson.M{"sharedWith": identity},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	res, err := s.db.Collection(folderCollection).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Delete removes the folder record. Photo objects already in the object store
// are left behind.
func (s *FolderStore) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := s.db.Collection(folderCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
