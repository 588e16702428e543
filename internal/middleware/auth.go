package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rohan/workout-buddy/internal/auth"
	"github.com/rohan/workout-buddy/internal/store"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller attached to the request context.
// The pointer may be nil: a token can verify while its user id no longer
// resolves against the store. Handlers must treat a nil identity as an
// authorization failure rather than assuming it is present.
type Identity struct {
	UserID string
}

// WithIdentity returns a context carrying the (possibly nil) identity.
func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// IdentityFrom returns the identity attached by RequireAuth, or nil.
func IdentityFrom(ctx context.Context) *Identity {
	ident, _ := ctx.Value(identityKey).(*Identity)
	return ident
}

// UserLookup resolves a user id against the store, fetching only the id.
type UserLookup interface {
	GetUserID(ctx context.Context, id string) (string, error)
}

// RequireAuth validates the `Authorization: Bearer <token>` header and
// attaches the caller identity to the request context. A cache miss falls
// through to the store; cache failures are logged and ignored. A verified
// token whose user no longer exists still passes, with a nil identity.
func RequireAuth(tokens *auth.TokenService, users UserLookup, cache *auth.IdentityCache, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, `{"error":"Authorization token required"}`, http.StatusUnauthorized)
				return
			}

			rawToken := strings.TrimPrefix(header, "Bearer ")
			userID, err := tokens.Verify(rawToken)
			if err != nil {
				http.Error(w, `{"error":"Request is not authorized"}`, http.StatusUnauthorized)
				return
			}

			ident, err := resolveIdentity(r.Context(), userID, users, cache, logger)
			if err != nil {
				logger.Error().Err(err).Msg("identity lookup failed")
				http.Error(w, `{"error":"Request is not authorized"}`, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
		})
	}
}

// resolveIdentity probes the store for the user id embedded in a verified
// token, consulting the cache first. Returns (nil, nil) when the user no
// longer exists.
func resolveIdentity(ctx context.Context, userID string, users UserLookup, cache *auth.IdentityCache, logger zerolog.Logger) (*Identity, error) {
	if cache != nil {
		cached, err := cache.Get(ctx, userID)
		if err != nil {
			logger.Warn().Err(err).Msg("identity cache get failed")
		} else if cached != "" {
			return &Identity{UserID: cached}, nil
		}
	}

	resolved, err := users.GetUserID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.Set(ctx, resolved); err != nil {
			logger.Warn().Err(err).Msg("identity cache set failed")
		}
	}
	return &Identity{UserID: resolved}, nil
}
