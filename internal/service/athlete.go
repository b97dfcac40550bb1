package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/athlete-platform/internal/apperror"
	"github.com/sakif/athlete-platform/internal/model"
	"github.com/sakif/athlete-platform/internal/repository"
)

// AthleteService handles public profile reads and owner-scoped mutations.
//
// Every mutating method takes the athlete ID resolved from the
// authenticated token — never from the request body — so a caller can only
// ever modify their own record.
type AthleteService struct {
	athletes repository.AthleteRepository
	logger   *slog.Logger
}

// NewAthleteService creates an AthleteService.
func NewAthleteService(athletes repository.AthleteRepository, logger *slog.Logger) *AthleteService {
	return &AthleteService{athletes: athletes, logger: logger}
}

// GetByID returns a single athlete's public profile.
func (s *AthleteService) GetByID(ctx context.Context, id string) (*model.Athlete, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "athlete ID is required")
	}
	return s.athletes.GetByID(ctx, id)
}

// List returns all athletes.
func (s *AthleteService) List(ctx context.Context) ([]model.Athlete, error) {
	return s.athletes.List(ctx)
}

// Stats returns the platform totals: registered athletes and videos
// across all profiles.
func (s *AthleteService) Stats(ctx context.Context) (*repository.Stats, error) {
	return s.athletes.Stats(ctx)
}

// UpdateInput carries the profile fields a caller may change. Pointer
// fields distinguish "not sent" (nil) from "sent as empty"; anything not
// represented here — userID, email, password, createdAt — is not
// updatable through this operation at all, so unexpected request fields
// are dropped during decoding and never reach the record.
type UpdateInput struct {
	Name         *string `json:"name"`
	Age          *int    `json:"age"`
	Sport        *string `json:"sport"`
	Position     *string `json:"position"`
	Phone        *string `json:"phone"`
	Location     *string `json:"location"`
	Achievements *string `json:"achievements"`
	Photo        *string `json:"photo"`
}

// UpdateProfile applies the allow-listed fields to the caller's own record.
//
// The loaded record's password hash is carried through to Save untouched:
// the hash is written once at registration and profile edits can never
// re-hash (or otherwise disturb) it.
func (s *AthleteService) UpdateProfile(ctx context.Context, athleteID string, in UpdateInput) (*model.Athlete, error) {
	athlete, err := s.athletes.GetByID(ctx, athleteID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		athlete.Name = strings.TrimSpace(*in.Name)
	}
	if in.Age != nil {
		if *in.Age < 1 {
			return nil, apperror.ValidationFailed("age", "age must be at least 1")
		}
		athlete.Age = *in.Age
	}
	if in.Sport != nil {
		athlete.Sport = strings.TrimSpace(*in.Sport)
	}
	if in.Position != nil {
		athlete.Position = strings.TrimSpace(*in.Position)
	}
	if in.Phone != nil {
		athlete.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Location != nil {
		athlete.Location = strings.TrimSpace(*in.Location)
	}
	if in.Achievements != nil {
		athlete.Achievements = *in.Achievements
	}
	if in.Photo != nil && *in.Photo != "" {
		athlete.Photo = *in.Photo
	}

	if err := s.athletes.Save(ctx, athlete); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", slog.String("id", athlete.ID))

	return athlete, nil
}

// AddVideo appends a video entry to the caller's own list and returns the
// full updated list. The entry gets a fresh identifier and timestamp here,
// at append time.
func (s *AthleteService) AddVideo(ctx context.Context, athleteID, title, url string) ([]model.Video, error) {
	title = strings.TrimSpace(title)
	url = strings.TrimSpace(url)
	if title == "" || url == "" {
		return nil, apperror.ValidationFailed("title", "Please provide title and URL")
	}

	athlete, err := s.athletes.GetByID(ctx, athleteID)
	if err != nil {
		return nil, err
	}

	athlete.Videos = append(athlete.Videos, model.Video{
		ID:      xid.New().String(),
		Title:   title,
		URL:     url,
		AddedAt: time.Now(),
	})

	if err := s.athletes.Save(ctx, athlete); err != nil {
		return nil, err
	}

	s.logger.Info("video added",
		slog.String("athleteID", athlete.ID),
		slog.Int("videos", len(athlete.Videos)),
	)

	return athlete.Videos, nil
}

// RemoveVideo drops the entry with the given ID from the caller's own
// list and returns the full updated list. Removal is a filter: an ID that
// isn't present is a silent no-op, not an error.
func (s *AthleteService) RemoveVideo(ctx context.Context, athleteID, videoID string) ([]model.Video, error) {
	athlete, err := s.athletes.GetByID(ctx, athleteID)
	if err != nil {
		return nil, err
	}

	kept := athlete.Videos[:0]
	for _, v := range athlete.Videos {
		if v.ID != videoID {
			kept = append(kept, v)
		}
	}
	athlete.Videos = kept

	if err := s.athletes.Save(ctx, athlete); err != nil {
		return nil, err
	}

	return athlete.Videos, nil
}
