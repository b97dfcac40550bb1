// Package repository defines the persistence interfaces consumed by the
// service layer. The service programs against these interfaces; the sqlite
// subpackage provides the concrete implementation.
package repository

import (
	"context"

	"github.com/sakif/athlete-platform/internal/model"
)

// Stats is the platform-wide aggregate returned by GET /athletes/stats.
type Stats struct {
	TotalAthletes int `json:"totalAthletes"`
	TotalVideos   int `json:"totalVideos"`
}

// AthleteRepository is the document store holding one record per
// registered athlete, video list included.
//
// Uniqueness of user_id and email is enforced here (UNIQUE constraints)
// as a backstop to the service-level pre-check — the pre-check-then-write
// sequence is not atomic, so Create must reject a concurrent duplicate
// with apperror.ErrDuplicate.
//
// Save persists a previously loaded record in full, video list included.
// Concurrent Saves of the same record are last-writer-wins; the store
// guarantees per-record atomicity, nothing more.
type AthleteRepository interface {
	// Create persists a new athlete, assigning ID and CreatedAt.
	Create(ctx context.Context, athlete *model.Athlete) error

	// GetByID returns the athlete with the given internal ID, or
	// apperror.ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.Athlete, error)

	// GetByEmail returns the athlete with the given email, or
	// apperror.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*model.Athlete, error)

	// GetByEmailOrUserID returns an athlete matching either value, or
	// apperror.ErrNotFound if both are free. Used by the registration
	// duplicate pre-check.
	GetByEmailOrUserID(ctx context.Context, email, userID string) (*model.Athlete, error)

	// List returns all athletes.
	List(ctx context.Context) ([]model.Athlete, error)

	// Save writes back a loaded athlete record, replacing its stored
	// fields and video list.
	Save(ctx context.Context, athlete *model.Athlete) error

	// Stats returns platform-wide totals.
	Stats(ctx context.Context) (*Stats, error)
}
