package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakif/athlete-platform/internal/apperror"
	"github.com/sakif/athlete-platform/internal/model"
)

func newTestAthleteService(repo *fakeAthleteRepo) *AthleteService {
	return NewAthleteService(repo, testLogger())
}

// seedAthlete puts an athlete straight into the fake repo.
func seedAthlete(t *testing.T, repo *fakeAthleteRepo) *model.Athlete {
	t.Helper()
	a := &model.Athlete{
		UserID:       "ath1",
		Name:         "Alex",
		Email:        "a@x.com",
		Age:          20,
		Sport:        "Football",
		Position:     "Striker",
		Phone:        "0123",
		Location:     "Dhaka",
		PasswordHash: "$2a$04$somestoredhash",
		Videos:       []model.Video{},
	}
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("seeding athlete: %v", err)
	}
	return a
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestUpdateProfile_AppliesAllowListedFields(t *testing.T) {
	repo := newFakeAthleteRepo()
	svc := newTestAthleteService(repo)
	seeded := seedAthlete(t, repo)

	updated, err := svc.UpdateProfile(context.Background(), seeded.ID, UpdateInput{
		Name:         strPtr("New Name"),
		Age:          intPtr(22),
		Sport:        strPtr("Cricket"),
		Achievements: strPtr("Gold medal"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	if updated.Name != "New Name" || updated.Age != 22 || updated.Sport != "Cricket" {
		t.Errorf("updated = %q/%d/%q", updated.Name, updated.Age, updated.Sport)
	}
	// omitted fields keep their values
	if updated.Position != "Striker" || updated.Location != "Dhaka" {
		t.Errorf("omitted fields changed: %q/%q", updated.Position, updated.Location)
	}
}

func TestUpdateProfile_NeverTouchesCredentialsOrIdentity(t *testing.T) {
	repo := newFakeAthleteRepo()
	svc := newTestAthleteService(repo)
	seeded := seedAthlete(t, repo)

	if _, err := svc.UpdateProfile(context.Background(), seeded.ID, UpdateInput{
		Name: strPtr("whoever"),
	}); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	stored := repo.byID[seeded.ID]
	if stored.PasswordHash != "$2a$04$somestoredhash" {
		t.Errorf("password hash changed on profile edit: %q", stored.PasswordHash)
	}
	if stored.Email != "a@x.com" || stored.UserID != "ath1" {
		t.Errorf("identity fields changed: %q/%q", stored.Email, stored.UserID)
	}
}

func TestUpdateProfile_RejectsInvalidAge(t *testing.T) {
	repo := newFakeAthleteRepo()
	svc := newTestAthleteService(repo)
	seeded := seedAthlete(t, repo)

	_, err := svc.UpdateProfile(context.Background(), seeded.ID, UpdateInput{Age: intPtr(0)})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
	if repo.byID[seeded.ID].Age != 20 {
		t.Error("invalid update was persisted")
	}
}

func TestUpdateProfile_MissingAthlete(t *testing.T) {
	svc := newTestAthleteService(newFakeAthleteRepo())

	_, err := svc.UpdateProfile(context.Background(), "gone", UpdateInput{Name: strPtr("x")})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestAddVideo_AppendsWithFreshIDAndTimestamp(t *testing.T) {
	repo := newFakeAthleteRepo()
	svc := newTestAthleteService(repo)
	seeded := seedAthlete(t, repo)

	before := time.Now()
	videos, err := svc.AddVideo(context.Background(), seeded.ID, "Highlights", "https://youtu.be/abc")
	if err != nil {
		t.Fatalf("AddVideo() error = %v", err)
	}
	if len(videos) != 1 {
		t.Fatalf("len(videos) = %d, want 1", len(videos))
	}
	v := videos[0]
	if v.ID == "" {
		t.Error("video got no ID at append time")
	}
	if v.AddedAt.Before(before.Add(-time.Second)) {
		t.Error("video AddedAt not set at append time")
	}

	// second append keeps the first entry and returns the full list
	videos, err = svc.AddVideo(context.Background(), seeded.ID, "Training", "https://youtu.be/def")
	if err != nil {
		t.Fatalf("second AddVideo() error = %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("len(videos) = %d, want 2", len(videos))
	}
	if videos[0].ID == videos[1].ID {
		t.Error("two appends produced the same video ID")
	}
}

func TestAddVideo_RequiresTitleAndURL(t *testing.T) {
	repo := newFakeAthleteRepo()
	svc := newTestAthleteService(repo)
	seeded := seedAthlete(t, repo)

	if _, err := svc.AddVideo(context.Background(), seeded.ID, "", "https://x"); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("missing title error = %v, want ErrValidation", err)
	}
	if _, err := svc.AddVideo(context.Background(), seeded.ID, "Title", "  "); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("missing url error = %v, want ErrValidation", err)
	}
	if got := len(repo.byID[seeded.ID].Videos); got != 0 {
		t.Errorf("invalid adds altered the list: %d entries", got)
	}
}

func TestRemoveVideo_FiltersMatchingEntry(t *testing.T) {
	repo := newFakeAthleteRepo()
	svc := newTestAthleteService(repo)
	seeded := seedAthlete(t, repo)

	v1, _ := svc.AddVideo(context.Background(), seeded.ID, "One", "u1")
	videos, _ := svc.AddVideo(context.Background(), seeded.ID, "Two", "u2")
	if len(videos) != 2 {
		t.Fatalf("setup: len = %d", len(videos))
	}

	remaining, err := svc.RemoveVideo(context.Background(), seeded.ID, v1[0].ID)
	if err != nil {
		t.Fatalf("RemoveVideo() error = %v", err)
	}
	if len(remaining) != 1 || remaining[0].Title != "Two" {
		t.Errorf("remaining = %+v, want only \"Two\"", remaining)
	}
}

func TestRemoveVideo_AbsentIDIsNoOp(t *testing.T) {
	repo := newFakeAthleteRepo()
	svc := newTestAthleteService(repo)
	seeded := seedAthlete(t, repo)

	if _, err := svc.AddVideo(context.Background(), seeded.ID, "One", "u1"); err != nil {
		t.Fatalf("AddVideo: %v", err)
	}

	remaining, err := svc.RemoveVideo(context.Background(), seeded.ID, "no-such-video")
	if err != nil {
		t.Fatalf("RemoveVideo() of absent ID error = %v, want nil", err)
	}
	if len(remaining) != 1 {
		t.Errorf("list changed on no-op removal: %d entries", len(remaining))
	}
}

func TestStats_SumsAcrossAthletes(t *testing.T) {
	repo := newFakeAthleteRepo()
	svc := newTestAthleteService(repo)
	seeded := seedAthlete(t, repo)

	svc.AddVideo(context.Background(), seeded.ID, "One", "u1")
	svc.AddVideo(context.Background(), seeded.ID, "Two", "u2")

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalAthletes != 1 || stats.TotalVideos != 2 {
		t.Errorf("Stats() = %+v, want 1 athlete / 2 videos", stats)
	}
}
