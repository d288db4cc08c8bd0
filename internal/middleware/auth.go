package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/memore/memore/internal/auth"
	"github.com/memore/memore/internal/model"
	"github.com/memore/memore/internal/repository"
)

// TokenParser validates bearer tokens.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// UserLookup loads the user a token was issued for.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// IdentityCache caches resolved identities between requests.
type IdentityCache interface {
	GetAuthContext(ctx context.Context, userID string) (*model.AuthContext, error)
	SetAuthContext(ctx context.Context, auth *model.AuthContext) error
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger *slog.Logger
	Tokens TokenParser
	Users  UserLookup
	// Cache is optional.
	Cache IdentityCache
}

// Auth returns a middleware that authenticates requests with a bearer token.
// The user behind the token must still exist and must not have changed
// their password after the token was issued.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := extractBearerToken(r)
			if token == "" {
				logAuthFailure(cfg.Logger, r, "missing_token")
				writeAuthError(w)
				return
			}

			claims, err := cfg.Tokens.Parse(token)
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, auth.ErrTokenExpired) {
					reason = "expired_token"
				}
				logAuthFailure(cfg.Logger, r, reason)
				writeAuthError(w)
				return
			}

			var authCtx *model.AuthContext
			cacheHit := false
			if cfg.Cache != nil {
				authCtx, err = cfg.Cache.GetAuthContext(ctx, claims.UserID)
				if err != nil {
					cfg.Logger.Warn("auth cache lookup failed",
						slog.String("error", err.Error()),
						slog.String("request_id", GetRequestID(ctx)),
					)
				}
				cacheHit = authCtx != nil
			}

			if authCtx == nil {
				user, err := cfg.Users.GetUserByID(ctx, claims.UserID)
				if err != nil {
					if errors.Is(err, repository.ErrUserNotFound) {
						logAuthFailure(cfg.Logger, r, "unknown_user")
					} else {
						cfg.Logger.Error("database error during auth",
							slog.String("error", err.Error()),
							slog.String("request_id", GetRequestID(ctx)),
						)
					}
					writeAuthError(w)
					return
				}

				authCtx = model.NewAuthContext(user)
				if cfg.Cache != nil {
					_ = cfg.Cache.SetAuthContext(ctx, authCtx)
				}
			}

			if authCtx.TokenRevoked(claims.IssuedAt) {
				logAuthFailure(cfg.Logger, r, "revoked_token")
				writeAuthError(w)
				return
			}

			noteUser(ctx, authCtx.UserID)
			cfg.Logger.Debug("authentication successful",
				slog.String("user_id", authCtx.UserID),
				slog.Bool("cache_hit", cacheHit),
				slog.String("request_id", GetRequestID(ctx)),
			)

			next.ServeHTTP(w, r.WithContext(auth.ContextWithAuth(ctx, authCtx)))
		})
	}
}

// extractBearerToken returns the token from "Authorization: Bearer <token>".
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func logAuthFailure(logger *slog.Logger, r *http.Request, reason string) {
	logger.Warn("authentication failed",
		slog.String("reason", reason),
		slog.String("ip", r.RemoteAddr),
		slog.String("endpoint", r.Method+" "+r.URL.Path),
		slog.String("request_id", GetRequestID(r.Context())),
	)
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="memore"`)
	writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "인증이 필요합니다.")
}
