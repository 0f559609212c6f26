package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/randevu-app/randevu-server/internal/app"
	svcErr "github.com/randevu-app/randevu-server/internal/errors"
	"github.com/randevu-app/randevu-server/internal/presence"
	"github.com/randevu-app/randevu-server/internal/service/interactions"
	"github.com/randevu-app/randevu-server/internal/service/notifications"
	"github.com/randevu-app/randevu-server/internal/service/views"
)

const defaultPageSize = 50

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	appCtx        *app.AppContext
	interactions  *interactions.Service
	views         *views.Service
	notifications *notifications.Service
	presence      *presence.Tracker
}

// NewHandler wires the services into a Handler.
func NewHandler(appCtx *app.AppContext) *Handler {
	return &Handler{
		appCtx:        appCtx,
		interactions:  interactions.NewService(appCtx),
		views:         views.NewService(appCtx),
		notifications: notifications.NewService(appCtx),
		presence:      presence.NewTracker(appCtx.RedisCache),
	}
}

// Routes builds the router with middleware and CORS applied.
func (h *Handler) Routes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/v1").Subrouter()
	api.Use(authenticate)

	api.HandleFunc("/interactions", h.handleInteraction).Methods(http.MethodPost)
	api.HandleFunc("/likes", h.handleListLikers).Methods(http.MethodGet)
	api.HandleFunc("/notifications", h.handleGetNotifications).Methods(http.MethodGet)
	api.HandleFunc("/notifications", h.handleAcknowledge).Methods(http.MethodPost)
	api.HandleFunc("/views", h.handleListViewers).Methods(http.MethodGet)
	api.HandleFunc("/views", h.handleRecordView).Methods(http.MethodPost)
	api.HandleFunc("/heartbeat", h.handleHeartbeat).Methods(http.MethodPost)

	var handler http.Handler = r
	handler = logRequests(h.appCtx)(handler)
	handler = requestID(handler)

	return cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-User-ID", "X-Request-ID"},
	}).Handler(handler)
}

type interactionRequest struct {
	Action   string `json:"action"`
	TargetID uint64 `json:"target_id"`
}

// handleInteraction handles POST /v1/interactions {action: LIKE|FAVORITE, target_id}.
func (h *Handler) handleInteraction(w http.ResponseWriter, r *http.Request) {
	var req interactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		outcome interactions.Outcome
		err     error
	)
	switch req.Action {
	case "LIKE":
		outcome, err = h.interactions.RecordLike(r.Context(), callerID(r), req.TargetID)
	case "FAVORITE":
		outcome, err = h.interactions.ToggleFavorite(r.Context(), callerID(r), req.TargetID)
	default:
		writeError(w, http.StatusBadRequest, "invalid action")
		return
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": string(outcome)})
}

// handleListLikers handles GET /v1/likes.
func (h *Handler) handleListLikers(w http.ResponseWriter, r *http.Request) {
	likers, nextToken, err := h.interactions.ListLikers(
		r.Context(), callerID(r), paginationToken(r), pageSize(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	resp := map[string]interface{}{"likers": likers}
	if nextToken != nil {
		resp["next_pagination_token"] = *nextToken
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGetNotifications handles GET /v1/notifications.
func (h *Handler) handleGetNotifications(w http.ResponseWriter, r *http.Request) {
	counts, err := h.notifications.GetCounts(r.Context(), callerID(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// handleAcknowledge handles POST /v1/notifications {type: LIKE|MATCH|VIEW}.
func (h *Handler) handleAcknowledge(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.notifications.Acknowledge(r.Context(), callerID(r), notifications.Stream(req.Type)); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// handleListViewers handles GET /v1/views.
func (h *Handler) handleListViewers(w http.ResponseWriter, r *http.Request) {
	viewers, nextToken, err := h.views.ListViewers(
		r.Context(), callerID(r), paginationToken(r), pageSize(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	resp := map[string]interface{}{"viewers": viewers}
	if nextToken != nil {
		resp["next_pagination_token"] = *nextToken
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleRecordView handles POST /v1/views {target_id}. The write is
// dispatched fire-and-forget; the response never waits on it.
func (h *Handler) handleRecordView(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TargetID uint64 `json:"target_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.views.DispatchRecord(callerID(r), req.TargetID)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "ACCEPTED"})
}

// handleHeartbeat handles POST /v1/heartbeat, called every 30s by clients.
func (h *Handler) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	if err := h.presence.Heartbeat(r.Context(), callerID(r)); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// --- helpers ---

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := svcErr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.appCtx.Logger.Error("request failed",
			"path", r.URL.Path,
			"request_id", r.Context().Value(ctxKeyRequestID),
			"err", err,
		)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func paginationToken(r *http.Request) *string {
	if token := r.URL.Query().Get("pagination_token"); token != "" {
		return &token
	}
	return nil
}

func pageSize(r *http.Request) int {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			return n
		}
	}
	return defaultPageSize
}
