package mongo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"photodrive/internal/store"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// PhotoStore is the GridFS implementation of store.PhotoStore. Objects are
// stored under their path ("photos/{folder}/{file}") as the GridFS filename,
// and the locator handed back after an upload is the public retrieval URL for
// that path.
type PhotoStore struct {
	bucket *mongo.GridFSBucket
	// publicURL is the externally reachable base URL of this service,
	// e.g. "http://localhost:8080".
	publicURL string
}

// NewPhotoStore initializes the GridFS bucket from the v2 mongo.Database.
func NewPhotoStore(db *mongo.Database, publicURL string) *PhotoStore {
	bucket := db.GridFSBucket(options.GridFSBucket().SetName("photos"))
	return &PhotoStore{bucket: bucket, publicURL: publicURL}
}

// Put streams an object into GridFS and returns its durable locator. The
// progress callback receives the fraction of the declared size read so far.
func (s *PhotoStore) Put(ctx context.Context, path string, size int64, source io.Reader, progress func(float64)) (string, error) {
	reader := source
	if progress != nil {
		reader = &progressReader{inner: source, total: size, report: progress}
	}

	if _, err := s.bucket.UploadFromStream(ctx, path, reader); err != nil {
		return "", err
	}

	return s.Locator(path), nil
}

// Locator returns the durable retrieval URL for an object path.
func (s *PhotoStore) Locator(path string) string {
	return fmt.Sprintf("%s/photo-service/%s", s.publicURL, path)
}

// Open returns a download stream over the most recent object stored under the
// given path, along with its length.
func (s *PhotoStore) Open(ctx context.Context, path string) (io.ReadCloser, int64, error) {
	// Revision -1 selects the most recently uploaded object with this name,
	// so a re-uploaded photo serves its latest bytes.
	opts := options.GridFSName().SetRevision(-1)
	stream, err := s.bucket.OpenDownloadStreamByName(ctx, path, opts)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, mongo.ErrFileNotFound) {
			return nil, 0, store.ErrNotFound
		}
		return nil, 0, err
	}

	return stream, stream.GetFile().Length, nil
}

// progressReader reports the fraction of the declared size read so far. The
// fraction is clamped to 1 in case the source yields more bytes than declared.
type progressReader struct {
	inner  io.Reader
	total  int64
	read   int64
	report func(float64)
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.inner.Read(p)
	if n > 0 {
		r.read += int64(n)
		if r.total > 0 {
			fraction := float64(r.read) / float64(r.total)
			if fraction > 1 {
				fraction = 1
			}
			r.report(fraction)
		}
	}
	return n, err
}
