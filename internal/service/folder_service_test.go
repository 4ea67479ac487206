package service_test

import (
	"context"
	"testing"

	"photodrive/internal/service"
	"photodrive/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func seedFolder(t *testing.T, folders *fakeFolderStore, name, owner, passcode string, photos []string) bson.ObjectID {
	t.Helper()
	id, err := folders.UpsertByName(context.Background(), store.FolderFields{
		Name:     name,
		Owner:    owner,
		Passcode: passcode,
		Photos:   photos,
	})
	require.NoError(t, err)
	return id
}

func TestListFoldersOwnedAndShared(t *testing.T) {
	folders := newFakeFolderStore()
	svc := service.NewFolderService(folders, nil)
	ctx := context.Background()

	tripID := seedFolder(t, folders, "trip", "a@x.com", "1234", nil)
	seedFolder(t, folders, "other", "b@x.com", "", nil)

	views, err := svc.ListFolders(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "trip", views[0].Name)
	assert.Equal(t, "owner", views[0].Access)

	require.NoError(t, svc.ShareFolder(ctx, "a@x.com", tripID, "b@x.com"))

	views, err = svc.ListFolders(ctx, "b@x.com")
	require.NoError(t, err)
	require.Len(t, views, 2)
	for _, v := range views {
		switch v.Name {
		case "trip":
			assert.Equal(t, "shared", v.Access)
		case "other":
			assert.Equal(t, "owner", v.Access)
		default:
			t.Fatalf("unexpected folder %q", v.Name)
		}
	}
}

func TestSearchFoldersFiltersForeignMatches(t *testing.T) {
	folders := newFakeFolderStore()
	svc := service.NewFolderService(folders, nil)
	ctx := context.Background()

	seedFolder(t, folders, "trip-rome", "a@x.com", "1234", nil)
	seedFolder(t, folders, "trip-oslo", "b@x.com", "", nil)
	osloID := seedFolder(t, folders, "trip-bern", "b@x.com", "", nil)
	require.NoError(t, svc.ShareFolder(ctx, "b@x.com", osloID, "a@x.com"))

	// the prefix scan itself matches all three; the result must not
	views, err := svc.SearchFolders(ctx, "a@x.com", "trip")
	require.NoError(t, err)
	require.Len(t, views, 2)
	names := map[string]string{}
	for _, v := range views {
		names[v.Name] = v.Access
	}
	assert.Equal(t, "owner", names["trip-rome"])
	assert.Equal(t, "shared", names["trip-bern"])
	assert.NotContains(t, names, "trip-oslo")
}

func TestRevealPhotos(t *testing.T) {
	folders := newFakeFolderStore()
	svc := service.NewFolderService(folders, nil)
	ctx := context.Background()

	photos := []string{"http://localhost:8080/photo-service/photos/trip/a.jpg"}
	id := seedFolder(t, folders, "trip", "a@x.com", "1234", photos)

	_, err := svc.RevealPhotos(ctx, "a@x.com", id, "0000")
	assert.ErrorIs(t, err, service.ErrPasscodeMismatch)

	// mismatch is a normal outcome: re-entry is permitted immediately
	got, err := svc.RevealPhotos(ctx, "a@x.com", id, "1234")
	require.NoError(t, err)
	assert.Equal(t, photos, got)

	// an invisible folder looks like a missing one
	_, err = svc.RevealPhotos(ctx, "b@x.com", id, "1234")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRevealEmptyPasscodeFolder(t *testing.T) {
	folders := newFakeFolderStore()
	svc := service.NewFolderService(folders, nil)
	ctx := context.Background()

	id := seedFolder(t, folders, "open", "a@x.com", "", []string{"x"})

	got, err := svc.RevealPhotos(ctx, "a@x.com", id, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got)

	_, err = svc.RevealPhotos(ctx, "a@x.com", id, "guess")
	assert.ErrorIs(t, err, service.ErrPasscodeMismatch)
}

func TestShareFolderScenario(t *testing.T) {
	folders := newFakeFolderStore()
	svc := service.NewFolderService(folders, nil)
	ctx := context.Background()

	id := seedFolder(t, folders, "trip", "a@x.com", "1234", nil)

	// only the owner may grant
	assert.ErrorIs(t, svc.ShareFolder(ctx, "b@x.com", id, "c@x.com"), service.ErrNotOwner)

	require.NoError(t, svc.ShareFolder(ctx, "a@x.com", id, "b@x.com"))
	// idempotent set-add
	require.NoError(t, svc.ShareFolder(ctx, "a@x.com", id, "b@x.com"))

	folder, err := folders.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"b@x.com"}, folder.SharedWith)

	views, err := svc.ListFolders(ctx, "b@x.com")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "shared", views[0].Access)
}

func TestRevokeShare(t *testing.T) {
	folders := newFakeFolderStore()
	svc := service.NewFolderService(folders, nil)
	ctx := context.Background()

	id := seedFolder(t, folders, "trip", "a@x.com", "1234", nil)
	require.NoError(t, svc.ShareFolder(ctx, "a@x.com", id, "b@x.com"))

	assert.ErrorIs(t, svc.RevokeShare(ctx, "b@x.com", id, "b@x.com"), service.ErrNotOwner)
	require.NoError(t, svc.RevokeShare(ctx, "a@x.com", id, "b@x.com"))

	views, err := svc.ListFolders(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestDeleteFolder(t *testing.T) {
	folders := newFakeFolderStore()
	svc := service.NewFolderService(folders, nil)
	ctx := context.Background()

	id := seedFolder(t, folders, "trip", "a@x.com", "1234", nil)

	assert.ErrorIs(t, svc.DeleteFolder(ctx, "b@x.com", id), service.ErrNotOwner)
	require.NoError(t, svc.DeleteFolder(ctx, "a@x.com", id))
	assert.ErrorIs(t, svc.DeleteFolder(ctx, "a@x.com", id), store.ErrNotFound)
}

func TestUpsertByNameCollisionTakesOverRecord(t *testing.T) {
	// two unrelated owners picking the same name merge into one record; the
	// second upload takes over owner and passcode. Current behavior,
	// reproduced deliberately.
	folders := newFakeFolderStore()
	svc := service.NewFolderService(folders, nil)
	ctx := context.Background()

	first := seedFolder(t, folders, "trip", "a@x.com", "1234", []string{"a.jpg"})
	second := seedFolder(t, folders, "trip", "b@x.com", "9999", []string{"b.jpg"})
	assert.Equal(t, first, second)

	folder, err := folders.GetByID(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "b@x.com", folder.Owner)
	assert.Equal(t, "9999", folder.Passcode)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, folder.Photos)

	// the original owner silently lost the folder
	views, err := svc.ListFolders(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, views)
}
