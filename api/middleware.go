package api

import (
	"context"
	"net/http"
	"os"
	"slices"
	"strings"

	"log/slog"

	"github.com/anujv/portfolio/internal/token"
	"github.com/anujv/portfolio/pkg/models"
	"github.com/anujv/portfolio/pkg/repository"
	"github.com/gorilla/mux"
)

type ctxKey string

const ctxAdmin ctxKey = "admin"

// package-level logger used by middleware and helpers; can be set via SetLogger from caller
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger installs a logger for the api package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
		)
		next.ServeHTTP(w, r)
	})
}

// CORSMiddleware applies the configured origin allow-list. Unmatched
// origins are logged and then allowed anyway — a deliberate development
// permissiveness kept from the original deployment; change to a rejection
// before production hardening. Requests without an Origin header (curl,
// server-to-server) pass untouched.
func CORSMiddleware(allowed []string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				if len(allowed) > 0 && !slices.Contains(allowed, origin) {
					logger.Warn("cors origin not in allow-list", slog.String("origin", origin))
				}
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Cache-Control")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic", slog.Any("err", err))
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// AuthMiddleware is the access guard for admin-only routes: it resolves a
// bearer token to a live administrator record or rejects the request. The
// resolved projection (password hash cleared) is attached to the request
// context; this is the only path by which write handlers become reachable.
func AuthMiddleware(tokens *token.Service, admins repository.AdminRepo) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "Not authorized, no token provided")
				return
			}

			adminID, err := tokens.Verify(tokenString)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Not authorized, token failed")
				return
			}

			// the admin may have been deleted or rotated since issuance
			admin, err := admins.GetAdminByID(r.Context(), adminID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to resolve admin")
				return
			}
			if admin == nil {
				writeError(w, http.StatusUnauthorized, "Not authorized, admin not found")
				return
			}

			admin.PasswordHash = ""
			ctx := context.WithValue(r.Context(), ctxAdmin, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFromContext returns the administrator resolved by AuthMiddleware.
func AdminFromContext(ctx context.Context) (*models.Admin, bool) {
	a, ok := ctx.Value(ctxAdmin).(*models.Admin)
	return a, ok
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	after, found := strings.CutPrefix(h, "Bearer ")
	if !found {
		return "", false
	}
	after = strings.TrimSpace(after)
	if after == "" {
		return "", false
	}
	return after, true
}
