package api

import (
	"context"
	"errors"
	"net/http"

	"photodrive/internal/service"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// FolderHandler holds the dependencies for folder-related HTTP handlers.
type FolderHandler struct {
	service service.FolderService
}

// NewFolderHandler creates a new FolderHandler with its dependencies.
func NewFolderHandler(svc service.FolderService) *FolderHandler {
	return &FolderHandler{service: svc}
}

// --- Request/Response Structs ---

type revealRequest struct {
	FolderID string `json:"id"`
	Passcode string `json:"passcode"`
}

func (r *revealRequest) Validate() error {
	if _, err := bson.ObjectIDFromHex(r.FolderID); err != nil {
		return errors.New("id must be a valid object ID string")
	}
	// An empty passcode is a legal submission: folders created without a
	// passcode are revealed by it.
	return nil
}

type revealResponse struct {
	Photos []string `json:"photos"`
}

type shareRequest struct {
	FolderID string `json:"id"`
	Email    string `json:"email"`
}

func (r *shareRequest) Validate() error {
	if _, err := bson.ObjectIDFromHex(r.FolderID); err != nil {
		return errors.New("id must be a valid object ID string")
	}
	if r.Email == "" {
		return errors.New("email is required")
	}
	return nil
}

// --- Handlers ---

// List handles the GET /folder-service/list endpoint: the owned-or-shared
// union for the calling identity.
func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("Identity not found in token"))
		return
	}

	folders, err := h.service.ListFolders(r.Context(), identity)
	if err != nil {
		apiErr := FromServiceError(err)
		writeJSON(w, apiErr.Status, apiErr)
		return
	}

	// Return an empty array instead of null when nothing matches.
	if folders == nil {
		folders = []service.FolderView{}
	}
	writeJSON(w, http.StatusOK, folders)
}

// Search handles the GET /folder-service/search endpoint. The term is a name
// prefix; results are already filtered to what the caller may see.
func (h *FolderHandler) Search(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("Identity not found in token"))
		return
	}

	term := r.URL.Query().Get("term")
	if term == "" {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError("Please enter a search term"))
		return
	}

	folders, err := h.service.SearchFolders(r.Context(), identity, term)
	if err != nil {
		apiErr := FromServiceError(err)
		writeJSON(w, apiErr.Status, apiErr)
		return
	}

	if folders == nil {
		folders = []service.FolderView{}
	}
	writeJSON(w, http.StatusOK, folders)
}

// Reveal handles the POST /folder-service/reveal endpoint: passcode-gated
// access to a folder's photo locators. Nothing is persisted on success; the
// client re-submits the passcode for every viewing session.
func (h *FolderHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("Identity not found in token"))
		return
	}

	var req revealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError("Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError(err.Error()))
		return
	}

	folderID, _ := bson.ObjectIDFromHex(req.FolderID)
	photos, err := h.service.RevealPhotos(r.Context(), identity, folderID, req.Passcode)
	if err != nil {
		apiErr := FromServiceError(err)
		writeJSON(w, apiErr.Status, apiErr)
		return
	}

	if photos == nil {
		photos = []string{}
	}
	writeJSON(w, http.StatusOK, revealResponse{Photos: photos})
}

// Share handles the POST /folder-service/share endpoint. Owner-only.
func (h *FolderHandler) Share(w http.ResponseWriter, r *http.Request) {
	h.mutateShare(w, r, h.service.ShareFolder)
}

// RevokeShare handles the POST /folder-service/revoke-share endpoint.
// Owner-only.
func (h *FolderHandler) RevokeShare(w http.ResponseWriter, r *http.Request) {
	h.mutateShare(w, r, h.service.RevokeShare)
}

// mutateShare factors the shared request plumbing of share and revoke-share:
// both take the same payload and differ only in the service call.
func (h *FolderHandler) mutateShare(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, identity string, folderID bson.ObjectID, grantee string) error) {
	identity, ok := GetIdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("Identity not found in token"))
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError("Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError(err.Error()))
		return
	}

	folderID, _ := bson.ObjectIDFromHex(req.FolderID)
	if err := op(r.Context(), identity, folderID, req.Email); err != nil {
		apiErr := FromServiceError(err)
		writeJSON(w, apiErr.Status, apiErr)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles the DELETE /folder-service/folder/{id} endpoint. Owner-only.
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("Identity not found in token"))
		return
	}

	folderID, err := bson.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError("id must be a valid object ID string"))
		return
	}

	if err := h.service.DeleteFolder(r.Context(), identity, folderID); err != nil {
		apiErr := FromServiceError(err)
		writeJSON(w, apiErr.Status, apiErr)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
