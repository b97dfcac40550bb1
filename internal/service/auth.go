// Package service contains the business logic layer.
//
// Handlers parse HTTP and delegate here; this layer validates, enforces
// the auth rules, and talks to the repository through its interface. It
// knows nothing about HTTP — errors come back as apperror values and the
// handler layer maps them to status codes.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/athlete-platform/internal/apperror"
	"github.com/sakif/athlete-platform/internal/auth"
	"github.com/sakif/athlete-platform/internal/model"
	"github.com/sakif/athlete-platform/internal/repository"
)

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 6

// AuthService handles registration, login, and current-profile lookup.
type AuthService struct {
	athletes  repository.AthleteRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all dependencies injected.
func NewAuthService(
	athletes repository.AthleteRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		athletes:  athletes,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the athlete record and the issued token so the
// handler can respond in one step.
type AuthResult struct {
	Athlete *model.Athlete
	Token   string
}

// RegisterInput carries the registration fields. Photo is the already
// uploaded blob URL (may be empty).
type RegisterInput struct {
	UserID       string
	Name         string
	Email        string
	Age          int
	Sport        string
	Position     string
	Phone        string
	Location     string
	Password     string
	Achievements string
	Photo        string
}

// Register creates a new athlete account.
//
// The duplicate pre-check on email/userID runs first; the repository's
// UNIQUE constraints close the remaining race by rejecting a concurrent
// duplicate insert the same way. The password is hashed exactly here —
// no later operation ever re-hashes the stored value, because no later
// operation accepts a password field at all.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Sport = strings.TrimSpace(in.Sport)
	in.Position = strings.TrimSpace(in.Position)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Location = strings.TrimSpace(in.Location)

	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	// Pre-check for an existing account with either identifier.
	_, err := s.athletes.GetByEmailOrUserID(ctx, in.Email, in.UserID)
	switch {
	case err == nil:
		return nil, apperror.Duplicate("Athlete with this email or userID already exists")
	case !errors.Is(err, apperror.ErrNotFound):
		return nil, fmt.Errorf("service/auth: checking for existing athlete: %w", err)
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	athlete := &model.Athlete{
		UserID:       in.UserID,
		Name:         in.Name,
		Email:        in.Email,
		Age:          in.Age,
		Sport:        in.Sport,
		Position:     in.Position,
		Phone:        in.Phone,
		Location:     in.Location,
		Achievements: in.Achievements,
		Photo:        in.Photo,
		Videos:       []model.Video{},
		PasswordHash: hash,
	}

	if err := s.athletes.Create(ctx, athlete); err != nil {
		if errors.Is(err, apperror.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("service/auth: creating athlete %s: %w", in.UserID, err)
	}

	s.logger.Info("athlete registered",
		slog.String("id", athlete.ID),
		slog.String("userID", athlete.UserID),
	)

	token, err := s.tokens.Generate(athlete.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing token for %s: %w", athlete.ID, err)
	}

	return &AuthResult{Athlete: athlete, Token: token}, nil
}

// Login authenticates an athlete by email and password and issues a token.
//
// An unknown email and a wrong password return the identical
// apperror.InvalidCredentials — response content must not reveal whether
// the account exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperror.ValidationFailed("email", "Please provide email and password")
	}

	athlete, err := s.athletes.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.InvalidCredentials()
		}
		return nil, fmt.Errorf("service/auth: looking up athlete by email: %w", err)
	}

	if !s.passwords.Verify(athlete.PasswordHash, password) {
		return nil, apperror.InvalidCredentials()
	}

	token, err := s.tokens.Generate(athlete.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing token for %s: %w", athlete.ID, err)
	}

	s.logger.Info("athlete logged in", slog.String("id", athlete.ID))

	return &AuthResult{Athlete: athlete, Token: token}, nil
}

// GetMe returns the athlete bound to an authenticated token's subject.
// Returns apperror.ErrNotFound if the record was deleted out-of-band.
func (s *AuthService) GetMe(ctx context.Context, athleteID string) (*model.Athlete, error) {
	if athleteID == "" {
		return nil, apperror.Unauthenticated()
	}
	return s.athletes.GetByID(ctx, athleteID)
}

// validateRegistration enforces required fields, age ≥ 1, and the minimum
// password length.
func validateRegistration(in RegisterInput) error {
	required := []struct {
		field, value string
	}{
		{"userID", in.UserID},
		{"name", in.Name},
		{"email", in.Email},
		{"sport", in.Sport},
		{"position", in.Position},
		{"phone", in.Phone},
		{"location", in.Location},
	}
	for _, f := range required {
		if f.value == "" {
			return apperror.ValidationFailed(f.field, fmt.Sprintf("%s is required", f.field))
		}
	}
	if in.Age < 1 {
		return apperror.ValidationFailed("age", "age must be at least 1")
	}
	if len(in.Password) < MinPasswordLength {
		return apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	return nil
}
