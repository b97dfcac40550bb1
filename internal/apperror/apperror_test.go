package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelMatchingThroughWrapping(t *testing.T) {
	// Services wrap AppErrors with fmt.Errorf("%w", ...); errors.Is must
	// still find the sentinel at the bottom of the chain.
	err := fmt.Errorf("registering athlete: %w", Duplicate("already exists"))

	if !errors.Is(err, ErrDuplicate) {
		t.Error("errors.Is() did not match ErrDuplicate through wrapping")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("errors.Is() matched an unrelated sentinel")
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("errors.As() did not extract *AppError")
	}
	if appErr.Message != "already exists" {
		t.Errorf("Message = %q, want %q", appErr.Message, "already exists")
	}
}

func TestInvalidCredentialsMessageIsFixed(t *testing.T) {
	// The login failure message must be a constant — it can't differ
	// between "no such email" and "wrong password".
	a := InvalidCredentials()
	b := InvalidCredentials()
	if a.Message != b.Message {
		t.Errorf("InvalidCredentials() messages differ: %q vs %q", a.Message, b.Message)
	}
	if a.Message != "Invalid credentials" {
		t.Errorf("InvalidCredentials() message = %q", a.Message)
	}
}

func TestNotFoundMessage(t *testing.T) {
	err := NotFound("athlete", "abc123")
	if err.Error() != "athlete not found with id abc123" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFound() does not unwrap to ErrNotFound")
	}
}

func TestValidationFailedCarriesField(t *testing.T) {
	err := ValidationFailed("age", "age must be at least 1")
	if err.Field != "age" {
		t.Errorf("Field = %q, want %q", err.Field, "age")
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationFailed() does not unwrap to ErrValidation")
	}
}
