package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"photodrive/internal/service"
	"photodrive/internal/store"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// PhotoHandler holds the dependencies for the upload and photo-serving
// endpoints.
type PhotoHandler struct {
	uploads service.UploadService
	photos  store.PhotoStore
}

// NewPhotoHandler creates a new PhotoHandler with its dependencies.
func NewPhotoHandler(uploads service.UploadService, photos store.PhotoStore) *PhotoHandler {
	return &PhotoHandler{uploads: uploads, photos: photos}
}

// Upload handles the POST /photo-service/upload endpoint. The multipart form
// carries the folder name, the passcode and one or more "photos" files. The
// batch is stored strictly in form order; a mid-batch failure keeps earlier
// photos recorded and never touches later ones.
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("Identity not found in token"))
		return
	}

	const maxUploadSize = 1 << 30 // 1 GB
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError("Failed to parse multipart form: "+err.Error()))
		return
	}

	folderName := r.FormValue("folder")
	if len(folderName) < 1 || len(folderName) > 256 {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError("Folder name is required and must be less than 256 characters"))
		return
	}
	passcode := r.FormValue("passcode")

	fileHeaders := r.MultipartForm.File["photos"]
	if len(fileHeaders) == 0 {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError("At least one 'photos' file is required"))
		return
	}

	batch := make([]service.PhotoUpload, 0, len(fileHeaders))
	var opened []io.Closer
	defer func() {
		for _, c := range opened {
			c.Close()
		}
	}()

	for _, header := range fileHeaders {
		if header.Filename == "" || len(header.Filename) >= 256 {
			writeJSON(w, http.StatusBadRequest, NewBadRequestError("Each photo needs a filename under 256 characters"))
			return
		}
		f, err := header.Open()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, NewBadRequestError("Failed to read uploaded file: "+header.Filename))
			return
		}
		opened = append(opened, f)
		batch = append(batch, service.PhotoUpload{
			Name:    header.Filename,
			Size:    header.Size,
			Content: f,
		})
	}

	result, err := h.uploads.UploadBatch(r.Context(), identity, folderName, passcode, batch, nil)
	if err != nil {
		if result != nil {
			// Partial batch: the folder references what made it before the
			// failure. Report the partial result alongside the error.
			log.Warn().Err(err).Str("folder", folderName).
				Int("stored", len(result.Locators)).Int("attempted", len(batch)).
				Msg("batch stored partially")
			writeJSON(w, http.StatusInternalServerError, struct {
				*APIError
				Partial *service.BatchResult `json:"partial"`
			}{
				APIError: NewInternalServerError(),
				Partial:  result,
			})
			return
		}
		apiErr := FromServiceError(err)
		writeJSON(w, apiErr.Status, apiErr)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// Serve handles GET /photo-service/photos/{folder}/{file}: the locator target.
// The locator itself is the capability; a reveal already happened client-side
// before any locator was handed out.
func (h *PhotoHandler) Serve(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	path := fmt.Sprintf("photos/%s/%s", vars["folder"], vars["file"])

	stream, length, err := h.photos.Open(r.Context(), path)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, NewNotFoundError("Photo not found"))
			return
		}
		apiErr := FromServiceError(err)
		writeJSON(w, apiErr.Status, apiErr)
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Length", strconv.FormatInt(length, 10))
	if _, err := io.Copy(w, stream); err != nil {
		log.Error().Err(err).Str("path", path).Msg("photo stream aborted")
	}
}
