// Package handler contains the HTTP layer: request parsing, response
// shaping, and nothing else. Business rules live in internal/service.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/athlete-platform/internal/apperror"
	"github.com/sakif/athlete-platform/internal/auth"
	"github.com/sakif/athlete-platform/internal/blob"
	"github.com/sakif/athlete-platform/internal/model"
	"github.com/sakif/athlete-platform/internal/service"
)

// AuthHandler serves registration, login, and the current-profile lookup.
type AuthHandler struct {
	auth   *service.AuthService
	blobs  blob.Store
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc *service.AuthService, blobs blob.Store, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: authSvc, blobs: blobs, logger: logger}
}

// authResponse is the body returned by register and login.
type authResponse struct {
	Token   string         `json:"token"`
	Athlete *model.Athlete `json:"athlete"`
}

type athleteResponse struct {
	Athlete *model.Athlete `json:"athlete"`
}

// registerRequest is the JSON body for POST /auth/register. The same
// fields arrive as form values when the client sends multipart (to attach
// a photo).
type registerRequest struct {
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Age          int    `json:"age"`
	Sport        string `json:"sport"`
	Position     string `json:"position"`
	Phone        string `json:"phone"`
	Location     string `json:"location"`
	Password     string `json:"password"`
	Achievements string `json:"achievements"`
}

// HandleRegister creates a new athlete account.
//
// HTTP: POST /auth/register (JSON or multipart/form-data with optional photo)
// Responds 201 with {token, athlete} — the athlete never includes the
// password hash.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	in, err := h.parseRegister(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auth.Register(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Token:   result.Token,
		Athlete: result.Athlete,
	})
}

// parseRegister reads the registration input from either a JSON body or a
// multipart form. A multipart photo part is pushed to the blob store and
// only its URL travels further in.
func (h *AuthHandler) parseRegister(r *http.Request) (service.RegisterInput, error) {
	var in service.RegisterInput

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
			return in, apperror.ValidationFailed("body", "invalid form body")
		}

		age := 0
		if ageStr := r.FormValue("age"); ageStr != "" {
			parsed, err := strconv.Atoi(ageStr)
			if err != nil {
				return in, apperror.ValidationFailed("age", "age must be a number")
			}
			age = parsed
		}

		photo, err := savePhoto(r, h.blobs)
		if err != nil {
			return in, err
		}

		in = service.RegisterInput{
			UserID:       r.FormValue("userID"),
			Name:         r.FormValue("name"),
			Email:        r.FormValue("email"),
			Age:          age,
			Sport:        r.FormValue("sport"),
			Position:     r.FormValue("position"),
			Phone:        r.FormValue("phone"),
			Location:     r.FormValue("location"),
			Password:     r.FormValue("password"),
			Achievements: r.FormValue("achievements"),
			Photo:        photo,
		}
		return in, nil
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return in, apperror.ValidationFailed("body", "invalid JSON body")
	}

	in = service.RegisterInput{
		UserID:       req.UserID,
		Name:         req.Name,
		Email:        req.Email,
		Age:          req.Age,
		Sport:        req.Sport,
		Position:     req.Position,
		Phone:        req.Phone,
		Location:     req.Location,
		Password:     req.Password,
		Achievements: req.Achievements,
	}
	return in, nil
}

// HandleLogin authenticates by email and password.
//
// HTTP: POST /auth/login
// Responds 200 with {token, athlete}, or 401 with the same
// "Invalid credentials" message for unknown email and wrong password alike.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Token:   result.Token,
		Athlete: result.Athlete,
	})
}

// HandleMe returns the authenticated athlete's own profile.
//
// HTTP: GET /auth/me (auth required)
// The RequireAuth middleware has already validated the token and put the
// subject in the context; 404 only if the record vanished out-of-band.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	athleteID, ok := auth.AthleteIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated())
		return
	}

	athlete, err := h.auth.GetMe(r.Context(), athleteID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, athleteResponse{Athlete: athlete})
}
