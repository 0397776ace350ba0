package web

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/abgdnv/shopfront/pkg/auth"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// OwnerIDParam is the query parameter carrying the tenant id on public routes.
const OwnerIDParam = "ownerId"

// TenantMiddleware scopes the request to the tenant named by the ownerId query parameter.
// Requests without it are rejected with 401.
func TenantMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ownerID := strings.TrimSpace(r.URL.Query().Get(OwnerIDParam))
			if !validOwnerID(ownerID) {
				RespondError(w, logger, http.StatusUnauthorized, "Unauthorized: ownerId is required")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithOwnerID(r.Context(), ownerID)))
		})
	}
}

// AuthMiddleware verifies the bearer token and scopes the request to the token subject.
func AuthMiddleware(verifier auth.Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				RespondError(w, logger, http.StatusUnauthorized, "Authorization header is required")
				return
			}
			tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || tokenString == "" {
				RespondError(w, logger, http.StatusUnauthorized, "Bearer token is required")
				return
			}

			token, err := verifier.Verify(r.Context(), tokenString)
			if err != nil {
				logger.WarnContext(r.Context(), "Token verification failed", "error", err)
				RespondError(w, logger, http.StatusUnauthorized, "Invalid token")
				return
			}
			subject, ok := token.Subject()
			if !ok || !validOwnerID(subject) {
				RespondError(w, logger, http.StatusUnauthorized, "Invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithOwnerID(r.Context(), subject)))
		})
	}
}

// RequestIDInjector takes the request id from the X-Request-Id header or generates one,
// stores it where middleware.GetReqID finds it and echoes it back.
func RequestIDInjector(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(middleware.RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(middleware.RequestIDHeader, reqID)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// StructuredLogger logs every completed request.
func StructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				logger.InfoContext(r.Context(), "Request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes_written", ww.BytesWritten(),
					"duration_ms", float64(time.Since(start).Nanoseconds())/1e6,
					"remote_addr", r.RemoteAddr,
					"user_agent", r.UserAgent(),
				)
			}()
			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}

// Recoverer turns a handler panic into a logged 500.
func Recoverer(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					logger.ErrorContext(r.Context(), "Panic recovered", "panic", rvr)
					RespondError(w, logger, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
				}
			}()
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}
