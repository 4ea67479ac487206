package service_test

import (
	"context"
	"strings"
	"testing"

	"photodrive/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchOf(names ...string) []service.PhotoUpload {
	batch := make([]service.PhotoUpload, 0, len(names))
	for _, name := range names {
		batch = append(batch, service.PhotoUpload{
			Name:    name,
			Size:    4,
			Content: strings.NewReader("data"),
		})
	}
	return batch
}

func TestUploadBatchCreatesFolder(t *testing.T) {
	folders := newFakeFolderStore()
	photos := newFakePhotoStore()
	svc := service.NewUploadService(folders, photos)

	result, err := svc.UploadBatch(context.Background(), "a@x.com", "trip", "1234", batchOf("a.jpg", "b.jpg"), nil)
	require.NoError(t, err)
	require.Len(t, result.Locators, 2)
	assert.Equal(t, "http://localhost:8080/photo-service/photos/trip/a.jpg", result.Locators[0])
	assert.Equal(t, "http://localhost:8080/photo-service/photos/trip/b.jpg", result.Locators[1])

	folder, err := folders.GetByID(context.Background(), result.FolderID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", folder.Owner)
	assert.Equal(t, "1234", folder.Passcode)
	assert.Equal(t, result.Locators, folder.Photos)
	assert.Empty(t, folder.SharedWith)
}

func TestUploadBatchIsSequential(t *testing.T) {
	folders := newFakeFolderStore()
	photos := newFakePhotoStore()
	svc := service.NewUploadService(folders, photos)

	_, err := svc.UploadBatch(context.Background(), "a@x.com", "trip", "", batchOf("1.jpg", "2.jpg", "3.jpg"), nil)
	require.NoError(t, err)

	// objects are stored strictly in batch order
	assert.Equal(t, []string{
		"photos/trip/1.jpg",
		"photos/trip/2.jpg",
		"photos/trip/3.jpg",
	}, photos.puts)
}

func TestUploadBatchProgressIsIndexWeighted(t *testing.T) {
	folders := newFakeFolderStore()
	photos := newFakePhotoStore()
	svc := service.NewUploadService(folders, photos)

	var reported []float64
	progress := func(f float64) { reported = append(reported, f) }

	_, err := svc.UploadBatch(context.Background(), "a@x.com", "trip", "", batchOf("a.jpg", "b.jpg"), progress)
	require.NoError(t, err)

	// the fake reports 0.5 then 1.0 per object; overall progress is the
	// index-weighted mean (completed + fraction) / total
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.5, 0.75, 1, 1}, reported)
}

func TestUploadBatchHaltsOnFailure(t *testing.T) {
	folders := newFakeFolderStore()
	photos := newFakePhotoStore()
	photos.failAt = 1 // second item fails
	svc := service.NewUploadService(folders, photos)

	result, err := svc.UploadBatch(context.Background(), "a@x.com", "trip", "1234", batchOf("a.jpg", "b.jpg", "c.jpg"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b.jpg")

	// the first photo was stored and recorded; the third was never attempted
	assert.Equal(t, []string{"photos/trip/a.jpg"}, photos.puts)
	require.NotNil(t, result)
	require.Len(t, result.Locators, 1)

	folder, getErr := folders.GetByID(context.Background(), result.FolderID)
	require.NoError(t, getErr)
	assert.Equal(t, result.Locators, folder.Photos)
}

func TestUploadBatchFirstItemFailureCreatesNothing(t *testing.T) {
	folders := newFakeFolderStore()
	photos := newFakePhotoStore()
	photos.failAt = 0
	svc := service.NewUploadService(folders, photos)

	result, err := svc.UploadBatch(context.Background(), "a@x.com", "trip", "1234", batchOf("a.jpg"), nil)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Empty(t, folders.folders)
}

func TestUploadBatchValidation(t *testing.T) {
	svc := service.NewUploadService(newFakeFolderStore(), newFakePhotoStore())

	_, err := svc.UploadBatch(context.Background(), "a@x.com", "", "", batchOf("a.jpg"), nil)
	assert.Error(t, err)

	_, err = svc.UploadBatch(context.Background(), "a@x.com", "trip", "", nil, nil)
	assert.Error(t, err)
}
