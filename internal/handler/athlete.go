package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sakif/athlete-platform/internal/apperror"
	"github.com/sakif/athlete-platform/internal/auth"
	"github.com/sakif/athlete-platform/internal/blob"
	"github.com/sakif/athlete-platform/internal/model"
	"github.com/sakif/athlete-platform/internal/service"
)

// AthleteHandler serves the public directory endpoints and the
// owner-scoped profile mutations.
type AthleteHandler struct {
	athletes *service.AthleteService
	blobs    blob.Store
	logger   *slog.Logger
}

// NewAthleteHandler creates an AthleteHandler.
func NewAthleteHandler(athletes *service.AthleteService, blobs blob.Store, logger *slog.Logger) *AthleteHandler {
	return &AthleteHandler{athletes: athletes, blobs: blobs, logger: logger}
}

type listResponse struct {
	Count    int             `json:"count"`
	Athletes []model.Athlete `json:"athletes"`
}

type videosResponse struct {
	VideoURLs []model.Video `json:"videoUrls"`
}

// HandleList returns every athlete profile.
//
// HTTP: GET /athletes
func (h *AthleteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	athletes, err := h.athletes.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Count:    len(athletes),
		Athletes: athletes,
	})
}

// HandleStats returns platform totals.
//
// HTTP: GET /athletes/stats → {totalAthletes, totalVideos}
func (h *AthleteHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.athletes.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// HandleGetByID returns one athlete's public profile.
//
// HTTP: GET /athletes/{id}
func (h *AthleteHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	athlete, err := h.athletes.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, athleteResponse{Athlete: athlete})
}

// HandleUpdateProfile applies allow-listed field changes to the caller's
// own record.
//
// HTTP: PUT /athletes/profile (auth required; JSON or multipart with
// optional photo)
//
// The target is always the token subject — no athlete ID is accepted from
// the request. Fields outside the allow-list are dropped during decoding
// and never touch the record.
func (h *AthleteHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	athleteID, ok := auth.AthleteIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated())
		return
	}

	in, err := h.parseUpdate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	athlete, err := h.athletes.UpdateProfile(r.Context(), athleteID, in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, athleteResponse{Athlete: athlete})
}

// parseUpdate reads the update input from JSON or a multipart form. With
// multipart, only fields actually present in the form are applied, which
// mirrors the "absent means unchanged" semantics of the JSON pointers.
func (h *AthleteHandler) parseUpdate(r *http.Request) (service.UpdateInput, error) {
	var in service.UpdateInput

	if !isMultipart(r) {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			return in, apperror.ValidationFailed("body", "invalid JSON body")
		}
		return in, nil
	}

	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		return in, apperror.ValidationFailed("body", "invalid form body")
	}

	form := r.MultipartForm.Value
	stringField := func(name string) *string {
		if vals, ok := form[name]; ok && len(vals) > 0 {
			return &vals[0]
		}
		return nil
	}

	in.Name = stringField("name")
	in.Sport = stringField("sport")
	in.Position = stringField("position")
	in.Phone = stringField("phone")
	in.Location = stringField("location")
	in.Achievements = stringField("achievements")

	if ageStr := stringField("age"); ageStr != nil {
		age, err := strconv.Atoi(*ageStr)
		if err != nil {
			return in, apperror.ValidationFailed("age", "age must be a number")
		}
		in.Age = &age
	}

	photo, err := savePhoto(r, h.blobs)
	if err != nil {
		return in, err
	}
	if photo != "" {
		in.Photo = &photo
	}

	return in, nil
}

// HandleAddVideo appends a video link to the caller's own profile.
//
// HTTP: POST /athletes/videos (auth required) → {videoUrls}
func (h *AthleteHandler) HandleAddVideo(w http.ResponseWriter, r *http.Request) {
	athleteID, ok := auth.AthleteIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated())
		return
	}

	var req struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	videos, err := h.athletes.AddVideo(r.Context(), athleteID, req.Title, req.URL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, videosResponse{VideoURLs: videos})
}

// HandleRemoveVideo drops a video link from the caller's own profile.
// Removing an ID that isn't in the list is a success, not an error.
//
// HTTP: DELETE /athletes/videos/{videoId} (auth required) → {videoUrls}
func (h *AthleteHandler) HandleRemoveVideo(w http.ResponseWriter, r *http.Request) {
	athleteID, ok := auth.AthleteIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated())
		return
	}

	videos, err := h.athletes.RemoveVideo(r.Context(), athleteID, chi.URLParam(r, "videoId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, videosResponse{VideoURLs: videos})
}
