package service

import (
	"context"
	"errors"
	"fmt"

	"photodrive/internal/access"
	"photodrive/internal/domain"
	"photodrive/internal/monitoring"
	"photodrive/internal/platform/email"
	"photodrive/internal/store"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// FolderView is the client-facing projection of a folder: metadata plus the
// caller's access classification, with passcode and photo locators withheld
// until a successful reveal.
type FolderView struct {
	ID         bson.ObjectID `json:"id"`
	Name       string        `json:"name"`
	Owner      string        `json:"owner"`
	SharedWith []string      `json:"sharedWith"`
	Access     string        `json:"access"`
	PhotoCount int           `json:"photoCount"`
}

// FolderService defines the interface for folder-related business logic.
type FolderService interface {
	ListFolders(ctx context.Context, identity string) ([]FolderView, error)
	SearchFolders(ctx context.Context, identity, term string) ([]FolderView, error)
	RevealPhotos(ctx context.Context, identity string, folderID bson.ObjectID, passcode string) ([]string, error)
	ShareFolder(ctx context.Context, identity string, folderID bson.ObjectID, grantee string) error
	RevokeShare(ctx context.Context, identity string, folderID bson.ObjectID, grantee string) error
	DeleteFolder(ctx context.Context, identity string, folderID bson.ObjectID) error
}

// folderService is the concrete implementation of the FolderService interface.
type folderService struct {
	folderStore store.FolderStore
	emailSvc    email.EmailService
}

// NewFolderService creates a new instance of the folder service. The email
// service may be nil when share notifications are disabled.
func NewFolderService(folderStore store.FolderStore, emailSvc email.EmailService) FolderService {
	return &folderService{
		folderStore: folderStore,
		emailSvc:    emailSvc,
	}
}

func viewOf(f *domain.Folder, identity string) FolderView {
	return FolderView{
		ID:         f.ID,
		Name:       f.Name,
		Owner:      f.Owner,
		SharedWith: f.SharedWith,
		Access:     access.Classify(f, identity).String(),
		PhotoCount: f.PhotoCount(),
	}
}

// ListFolders returns the folders the identity owns or that were shared with
// it, annotated with the caller's classification.
func (s *folderService) ListFolders(ctx context.Context, identity string) ([]FolderView, error) {
	folders, err := s.folderStore.ListOwnedOrShared(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders from store: %w", err)
	}

	// The directory query already filters by identity; the classify pass is
	// a defensive second check and drops malformed records.
	views := make([]FolderView, 0, len(folders))
	for _, f := range access.FilterVisible(folders, identity) {
		views = append(views, viewOf(f, identity))
	}
	return views, nil
}

// SearchFolders runs a name-prefix scan over the whole directory and filters
// the matches down to what the identity may see. The scan itself is
// unauthenticated, so the access filter is what keeps foreign folders out of
// the result.
func (s *folderService) SearchFolders(ctx context.Context, identity, term string) ([]FolderView, error) {
	matches, err := s.folderStore.FindByNamePrefix(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search folders: %w", err)
	}

	views := make([]FolderView, 0, len(matches))
	for _, f := range access.FilterVisible(matches, identity) {
		views = append(views, viewOf(f, identity))
	}
	return views, nil
}

// RevealPhotos returns the folder's photo locators iff the identity may see
// the folder and the supplied passcode matches exactly. The reveal is
// stateless: nothing is persisted on success and every request re-checks.
func (s *folderService) RevealPhotos(ctx context.Context, identity string, folderID bson.ObjectID, passcode string) ([]string, error) {
	folder, err := s.folderStore.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}

	// An invisible folder looks exactly like a missing one.
	if access.Classify(folder, identity) == access.NoAccess {
		return nil, store.ErrNotFound
	}

	if !access.Reveal(folder, passcode) {
		monitoring.PasscodeRejections.Inc()
		return nil, ErrPasscodeMismatch
	}

	return folder.Photos, nil
}

// ShareFolder grants the grantee visibility into the folder. Owner-only.
func (s *folderService) ShareFolder(ctx context.Context, identity string, folderID bson.ObjectID, grantee string) error {
	folder, err := s.folderStore.GetByID(ctx, folderID)
	if err != nil {
		return err
	}

	if access.Classify(folder, identity) != access.Owner {
		return ErrNotOwner
	}

	if err := s.folderStore.AddToSharedWith(ctx, folderID, grantee); err != nil {
		return fmt.Errorf("failed to share folder: %w", err)
	}
	monitoring.SharesTotal.Inc()

	if s.emailSvc != nil {
		// Notification is best effort and must not block or fail the grant.
		go func() {
			if err := s.emailSvc.SendShareNotification(grantee, folder.Name, folder.Owner); err != nil {
				log.Warn().Err(err).Str("grantee", grantee).Msg("share notification failed")
			}
		}()
	}

	return nil
}

// RevokeShare removes a previously granted identity. Owner-only.
func (s *folderService) RevokeShare(ctx context.Context, identity string, folderID bson.ObjectID, grantee string) error {
	folder, err := s.folderStore.GetByID(ctx, folderID)
	if err != nil {
		return err
	}

	if access.Classify(folder, identity) != access.Owner {
		return ErrNotOwner
	}

	if err := s.folderStore.RemoveFromSharedWith(ctx, folderID, grantee); err != nil {
		return fmt.Errorf("failed to revoke share: %w", err)
	}
	return nil
}

// DeleteFolder removes the folder record. Owner-only. Photo objects already
// stored stay behind; the directory record is what grants reachability.
func (s *folderService) DeleteFolder(ctx context.Context, identity string, folderID bson.ObjectID) error {
	folder, err := s.folderStore.GetByID(ctx, folderID)
	if err != nil {
		return err
	}

	if access.Classify(folder, identity) != access.Owner {
		return ErrNotOwner
	}

	if err := s.folderStore.Delete(ctx, folderID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	return nil
}
