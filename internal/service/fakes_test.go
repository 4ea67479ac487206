package service_test

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"photodrive/internal/domain"
	"photodrive/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// fakeFolderStore is an in-memory store.FolderStore reproducing the
// directory's merge-upsert and set-add semantics.
type fakeFolderStore struct {
	mu      sync.Mutex
	folders map[string]*domain.Folder // keyed by hex id
}

func newFakeFolderStore() *fakeFolderStore {
	return &fakeFolderStore{folders: map[string]*domain.Folder{}}
}

func (s *fakeFolderStore) ListOwnedOrShared(_ context.Context, identity string) ([]*domain.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.Folder
	for _, f := range s.folders {
		if f.Owner == identity {
			out = append(out, f)
			continue
		}
		for _, g := range f.SharedWith {
			if g == identity {
				out = append(out, f)
				break
			}
		}
	}
	return out, nil
}

func (s *fakeFolderStore) FindByNamePrefix(_ context.Context, prefix string) ([]*domain.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.Folder
	for _, f := range s.folders {
		if len(f.Name) >= len(prefix) && f.Name[:len(prefix)] == prefix {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *fakeFolderStore) UpsertByName(_ context.Context, fields store.FolderFields) (bson.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.folders {
		if f.Name == fields.Name {
			// merge into the existing record: owner and passcode are
			// overwritten, photos appended, sharedWith untouched
			f.Owner = fields.Owner
			f.Passcode = fields.Passcode
			f.Photos = append(f.Photos, fields.Photos...)
			f.UpdatedAt = time.Now()
			return f.ID, nil
		}
	}

	id := bson.NewObjectID()
	now := time.Now()
	s.folders[id.Hex()] = &domain.Folder{
		ID:         id,
		Name:       fields.Name,
		Owner:      fields.Owner,
		SharedWith: []string{},
		Passcode:   fields.Passcode,
		Photos:     append([]string{}, fields.Photos...),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return id, nil
}

func (s *fakeFolderStore) GetByID(_ context.Context, id bson.ObjectID) (*domain.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.folders[id.Hex()]
	if !ok {
		return nil, store.ErrNotFound
	}
	return f, nil
}

func (s *fakeFolderStore) AddToSharedWith(_ context.Context, id bson.ObjectID, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.folders[id.Hex()]
	if !ok {
		return store.ErrNotFound
	}
	for _, g := range f.SharedWith {
		if g == identity {
			return nil
		}
	}
	f.SharedWith = append(f.SharedWith, identity)
	return nil
}

func (s *fakeFolderStore) RemoveFromSharedWith(_ context.Context, id bson.ObjectID, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.folders[id.Hex()]
	if !ok {
		return store.ErrNotFound
	}
	kept := f.SharedWith[:0]
	for _, g := range f.SharedWith {
		if g != identity {
			kept = append(kept, g)
		}
	}
	f.SharedWith = kept
	return nil
}

func (s *fakeFolderStore) Delete(_ context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.folders[id.Hex()]; !ok {
		return store.ErrNotFound
	}
	delete(s.folders, id.Hex())
	return nil
}

// fakePhotoStore is an in-memory store.PhotoStore that can be told to fail at
// a given item index.
type fakePhotoStore struct {
	mu     sync.Mutex
	puts   []string // paths in put order
	failAt int      // index of the put that fails; -1 never fails
}

func newFakePhotoStore() *fakePhotoStore {
	return &fakePhotoStore{failAt: -1}
}

func (s *fakePhotoStore) Put(_ context.Context, path string, size int64, source io.Reader, progress func(float64)) (string, error) {
	s.mu.Lock()
	index := len(s.puts)
	s.mu.Unlock()

	if s.failAt >= 0 && index == s.failAt {
		return "", fmt.Errorf("object store rejected %s", path)
	}

	if progress != nil {
		progress(0.5)
	}
	if _, err := io.Copy(io.Discard, source); err != nil {
		return "", err
	}
	if progress != nil {
		progress(1)
	}

	s.mu.Lock()
	s.puts = append(s.puts, path)
	s.mu.Unlock()

	return "http://localhost:8080/photo-service/" + path, nil
}

func (s *fakePhotoStore) Open(_ context.Context, path string) (io.ReadCloser, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.puts {
		if p == path {
			return io.NopCloser(nil), 0, nil
		}
	}
	return nil, 0, store.ErrNotFound
}
