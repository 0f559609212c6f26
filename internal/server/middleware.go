package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/randevu-app/randevu-server/internal/app"
)

type ctxKey int

const (
	ctxKeyUserID ctxKey = iota
	ctxKeyRequestID
)

// requestID middleware tags every request with a generated id, echoed back
// in the X-Request-ID header and attached to log lines.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), ctxKeyRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authenticate trusts the verified identity the gateway forwards in the
// X-User-ID header. This core never authenticates; unauthenticated calls
// are rejected before any store access.
func authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-ID")
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "missing caller identity")
			return
		}
		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || userID == 0 {
			writeError(w, http.StatusUnauthorized, "invalid caller identity")
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// logRequests logs method, path and request id at debug level.
func logRequests(appCtx *app.AppContext) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			appCtx.Logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", r.Context().Value(ctxKeyRequestID),
			)
			next.ServeHTTP(w, r)
		})
	}
}

// callerID extracts the authenticated user id placed by authenticate.
func callerID(r *http.Request) uint64 {
	id, _ := r.Context().Value(ctxKeyUserID).(uint64)
	return id
}
