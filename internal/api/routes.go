package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// NewRouter wires all application routes and middleware into a single
// http.Handler.
func NewRouter(
	userHandler *UserHandler,
	folderHandler *FolderHandler,
	photoHandler *PhotoHandler,
	auth *AuthMiddleware,
) http.Handler {
	r := mux.NewRouter()

	// --- Public routes ---
	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprintln(w, "API is running.")
	}).Methods(http.MethodGet)

	r.HandleFunc("/user-service/create", userHandler.SignUp).Methods(http.MethodPost)
	r.HandleFunc("/user-service/login", userHandler.SignIn).Methods(http.MethodPost)

	// Photo locators must stay durable retrieval URLs, so serving them does
	// not sit behind the auth middleware. Possession of a locator implies a
	// passcode reveal already happened.
	r.HandleFunc("/photo-service/photos/{folder}/{file}", photoHandler.Serve).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// --- Routes requiring authentication ---
	protected := r.NewRoute().Subrouter()
	protected.Use(auth.RequireAuth)

	protected.HandleFunc("/folder-service/list", folderHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/folder-service/search", folderHandler.Search).Methods(http.MethodGet)
	protected.HandleFunc("/folder-service/reveal", folderHandler.Reveal).Methods(http.MethodPost)
	protected.HandleFunc("/folder-service/share", folderHandler.Share).Methods(http.MethodPost)
	protected.HandleFunc("/folder-service/revoke-share", folderHandler.RevokeShare).Methods(http.MethodPost)
	protected.HandleFunc("/folder-service/folder/{id}", folderHandler.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/photo-service/upload", photoHandler.Upload).Methods(http.MethodPost)

	r.Use(loggingMiddleware)

	return cors.AllowAll().Handler(r)
}
