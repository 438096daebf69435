package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"travia-admin/internal/notify"
	"travia-admin/internal/repository"

	"go.uber.org/zap"
)

// NotificationsHandler the agency's realtime feed: recent history from
// the table, live events over SSE, and the push permission flag.
type NotificationsHandler struct {
	notifications repository.NotificationsRepository
	hub           *notify.Hub
	pusher        *notify.Pusher
	logger        *zap.Logger
}

func NewNotificationsHandler(notifications repository.NotificationsRepository, hub *notify.Hub, pusher *notify.Pusher, logger *zap.Logger) *NotificationsHandler {
	return &NotificationsHandler{
		notifications: notifications,
		hub:           hub,
		pusher:        pusher,
		logger:        logger,
	}
}

// List returns recent notifications from the table, most recent first.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	p := PrincipalFrom(r.Context())
	limit := parseInt(r.URL.Query().Get("limit"), 50)

	items, err := h.notifications.ListNotifications(r.Context(), p.AgencyID, limit)
	if err != nil {
		h.logger.Error("Failed to list notifications", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(items))
}

// Stream subscribes the caller to its agency feed over SSE. Events
// arriving while the agency is disconnected are not replayed; List
// covers catch-up.
func (h *NotificationsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	p := PrincipalFrom(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, Fail("streaming unsupported"))
		return
	}

	ch, cancel := h.hub.Subscribe(p.AgencyID)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case n, open := <-ch:
			if !open {
				return
			}
			payload, err := json.Marshal(n)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: notification\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

// Permission reads or updates the agency's push permission flag.
func (h *NotificationsHandler) Permission(w http.ResponseWriter, r *http.Request) {
	p := PrincipalFrom(r.Context())

	if h.pusher == nil {
		writeJSON(w, http.StatusOK, Ok(map[string]any{"enabled": false}))
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, Ok(map[string]any{
			"enabled":    true,
			"permission": h.pusher.Permission(r.Context(), p.AgencyID),
		}))

	case http.MethodPost:
		var reqBody struct {
			Permission string `json:"permission"`
		}
		if err := readBodyJSON(r, 1<<20, &reqBody); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		switch reqBody.Permission {
		case notify.PermGranted, notify.PermDenied, notify.PermDefault:
		default:
			writeJSON(w, http.StatusBadRequest, Fail("invalid permission"))
			return
		}
		if err := h.pusher.SetPermission(r.Context(), p.AgencyID, reqBody.Permission); err != nil {
			h.logger.Error("Failed to set push permission", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
			return
		}
		writeJSON(w, http.StatusOK, Ok[any](nil))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
