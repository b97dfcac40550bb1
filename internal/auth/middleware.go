package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is an unexported type for context keys in this package.
// Only this package can create a key of this type, so no other package can
// read or shadow the athlete ID stored in the request context.
type contextKey string

const athleteIDKey contextKey = "athleteID"

// unauthorizedBody is the single 401 payload for every authentication
// failure. Missing header, malformed token and expired token all produce
// this exact response so a caller can't tell which one occurred.
const unauthorizedBody = `{"error":"unauthorized","message":"Not authorized, invalid credentials"}`

// RequireAuth is the gate in front of every protected route.
//
// It extracts the bearer token from the Authorization header, validates it,
// and stores the athlete ID from the token's subject in the request context
// for downstream handlers. Requests without a valid token are rejected with
// 401 before any business logic runs. No token refresh, no sliding expiry —
// context attachment is the only side effect.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				writeUnauthorized(w)
				return
			}

			athleteID, err := tokens.Validate(raw)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), athleteIDKey, athleteID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AthleteIDFromContext retrieves the authenticated athlete's ID from the
// request context. Returns ("", false) if the request did not pass through
// RequireAuth with a valid token.
func AthleteIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(athleteIDKey).(string)
	return id, ok && id != ""
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme comparison is case-insensitive per RFC 9110.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(unauthorizedBody))
}
