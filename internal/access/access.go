// Package access holds the folder visibility rules: who may see a folder's
// metadata, and under what condition its photos become visible. It is pure
// decision logic with no I/O so it can be tested in isolation.
package access

import "photodrive/internal/domain"

// Level classifies a user's relationship to a folder.
type Level int

const (
	// NoAccess means the folder must not be shown to the user at all.
	NoAccess Level = iota
	// Shared means the user was granted visibility by the owner.
	Shared
	// Owner means the user created the folder.
	Owner
)

// String returns the label used in API responses and logs.
func (l Level) String() string {
	switch l {
	case Owner:
		return "owner"
	case Shared:
		return "shared"
	default:
		return "none"
	}
}

// Classify decides the visibility level of a folder for the given identity.
// A malformed record with an empty owner classifies NoAccess rather than
// failing: the directory is a loosely-typed external store and records missing
// fields must simply stay invisible.
func Classify(folder *domain.Folder, identity string) Level {
	if folder == nil || folder.Owner == "" || identity == "" {
		return NoAccess
	}
	if folder.Owner == identity {
		return Owner
	}
	for _, grantee := range folder.SharedWith {
		if grantee == identity {
			return Shared
		}
	}
	return NoAccess
}

// Reveal reports whether the supplied passcode unlocks the folder's photos.
// The comparison is exact string equality: a folder created with an empty
// passcode is revealed by an empty submission. The result is never persisted;
// callers re-check on every reveal request.
func Reveal(folder *domain.Folder, suppliedPasscode string) bool {
	if folder == nil {
		return false
	}
	return suppliedPasscode == folder.Passcode
}

// FilterVisible drops every folder the identity may not see. The directory's
// name-prefix scan is unauthenticated, so search results must pass through
// here before they reach a client.
func FilterVisible(folders []*domain.Folder, identity string) []*domain.Folder {
	visible := make([]*domain.Folder, 0, len(folders))
	for _, f := range folders {
		if Classify(f, identity) != NoAccess {
			visible = append(visible, f)
		}
	}
	return visible
}
