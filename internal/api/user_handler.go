package api

import (
	"net/http"

	"photodrive/internal/config"
	"photodrive/internal/service"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// UserHandler holds the dependencies for user-related HTTP handlers.
type UserHandler struct {
	service service.UserService
	cfg     config.HTTP
}

// NewUserHandler creates a new UserHandler with its dependencies.
func NewUserHandler(svc service.UserService, cfg config.HTTP) *UserHandler {
	return &UserHandler{service: svc, cfg: cfg}
}

// --- Request/Response Structs ---

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User         interface{} `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

// --- Handlers ---

// SignUp handles the POST /user-service/create endpoint.
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError("Invalid request body"))
		return
	}

	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError("Email and password are required"))
		return
	}

	user, accessToken, refreshToken, err := h.service.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		apiErr := FromServiceError(err)
		writeJSON(w, apiErr.Status, apiErr)
		return
	}

	h.setSessionCookies(w, accessToken)

	resp := authResponse{
		User:         user.ToPublic(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	writeJSON(w, http.StatusCreated, resp)
}

// SignIn handles the POST /user-service/login endpoint.
func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError("Invalid request body"))
		return
	}

	user, accessToken, refreshToken, err := h.service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		apiErr := FromServiceError(err)
		writeJSON(w, apiErr.Status, apiErr)
		return
	}

	h.setSessionCookies(w, accessToken)

	resp := authResponse{
		User:         user.ToPublic(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	writeJSON(w, http.StatusOK, resp)
}

// setSessionCookies writes the access token plus the legacy "isAuthenticated"
// marker. The marker has no expiry and is never cleared; it only gates the
// client's app shell, while every privileged route re-verifies the JWT.
func (h *UserHandler) setSessionCookies(w http.ResponseWriter, accessToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access-token",
		Value:    accessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
	})
	http.SetCookie(w, &http.Cookie{
		Name:   "isAuthenticated",
		Value:  "true",
		Path:   "/",
		Secure: h.cfg.SecureCookies,
	})
}

// --- Helper Functions ---

// writeJSON is a utility for sending JSON responses with a given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}
