package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"photodrive/internal/monitoring"
	"photodrive/internal/store"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// PhotoUpload is one item of a batch: the original file name and its content
// stream with a declared size.
type PhotoUpload struct {
	Name    string
	Size    int64
	Content io.Reader
}

// BatchResult reports what a batch upload accomplished. On a mid-batch
// failure Locators holds the photos stored before the failing item.
type BatchResult struct {
	FolderID bson.ObjectID `json:"folderId"`
	Locators []string      `json:"locators"`
}

// UploadService runs photo batch uploads and records the results on the
// folder directory.
type UploadService interface {
	// UploadBatch stores each photo in order and then upserts the folder
	// record by name with the collected locators. Progress, when non-nil,
	// receives the index-weighted batch fraction in [0,1].
	UploadBatch(ctx context.Context, identity, folderName, passcode string, photos []PhotoUpload, progress func(float64)) (*BatchResult, error)
}

type uploadService struct {
	folderStore store.FolderStore
	photoStore  store.PhotoStore
}

// NewUploadService creates a new instance of the upload service.
func NewUploadService(folderStore store.FolderStore, photoStore store.PhotoStore) UploadService {
	return &uploadService{
		folderStore: folderStore,
		photoStore:  photoStore,
	}
}

// UploadBatch uploads photos strictly one at a time: each object is fully
// stored and its locator collected before the next begins. A failure at item
// k halts the batch; items before k keep their locators and are recorded on
// the folder, items after k are never attempted, and the stored objects are
// not rolled back.
func (s *uploadService) UploadBatch(ctx context.Context, identity, folderName, passcode string, photos []PhotoUpload, progress func(float64)) (*BatchResult, error) {
	if folderName == "" {
		return nil, errors.New("folder name cannot be empty")
	}
	if len(photos) == 0 {
		return nil, errors.New("batch must contain at least one photo")
	}

	total := float64(len(photos))
	locators := make([]string, 0, len(photos))

	report := func(f float64) {
		monitoring.UploadProgress.Set(f)
		if progress != nil {
			progress(f)
		}
	}
	report(0)

	var failure error
	for i, photo := range photos {
		path := fmt.Sprintf("photos/%s/%s", folderName, photo.Name)

		completed := float64(i)
		perObject := func(fraction float64) {
			// Index-weighted mean across the batch, not byte-weighted.
			report((completed + fraction) / total)
		}

		locator, err := s.photoStore.Put(ctx, path, photo.Size, photo.Content, perObject)
		if err != nil {
			monitoring.UploadFailures.Inc()
			log.Error().Err(err).Str("folder", folderName).Str("photo", photo.Name).
				Int("index", i).Msg("batch upload aborted")
			failure = fmt.Errorf("failed to upload %s: %w", photo.Name, err)
			break
		}

		locators = append(locators, locator)
		monitoring.UploadsTotal.Inc()
		monitoring.PhotoBytes.Add(float64(photo.Size))
		report((completed + 1) / total)
	}

	if len(locators) == 0 {
		// Nothing stored; no folder record is created or touched.
		return nil, failure
	}

	fields := store.FolderFields{
		Name:     folderName,
		Owner:    identity,
		Passcode: passcode,
		Photos:   locators,
	}

	id, err := s.folderStore.UpsertByName(ctx, fields)
	if err != nil {
		if failure != nil {
			return nil, fmt.Errorf("failed to record partial batch after upload error (%v): %w", failure, err)
		}
		return nil, fmt.Errorf("failed to record folder: %w", err)
	}

	result := &BatchResult{FolderID: id, Locators: locators}
	if failure != nil {
		// Partial success: the folder references what was stored before the
		// failing item. The caller gets both the record and the error.
		return result, failure
	}
	return result, nil
}
