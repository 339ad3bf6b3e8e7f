package audit

import (
	"net/http"
	"strconv"

	"github.com/spendwise/expense-tracker/internal"
	"github.com/spendwise/expense-tracker/internal/transport"
	"github.com/spendwise/expense-tracker/internal/user"
	"github.com/spendwise/expense-tracker/pkg/logger"
)

type ServiceAPI interface {
	GetRecent(limit int) ([]*Log, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Users   user.Repository
}

func NewHandler(service ServiceAPI, users user.Repository) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Service:     service,
		Users:       users,
	}
}

// GetLogs returns recent audit entries; admin only.
func (h *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	username := internal.UsernameFromContext(r.Context())
	if username == "" {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.Users.GetByUsername(username)
	if err != nil || !u.IsAdmin() {
		h.Logger.Warn("GetLogs: admin access required", "username", username)
		h.WriteError(w, http.StatusForbidden, "admin access required")
		return
	}

	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 1000 {
			limit = l
		}
	}

	logs, err := h.Service.GetRecent(limit)
	if err != nil {
		h.Logger.Error("GetLogs: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get audit logs")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"logs":  logs,
		"count": len(logs),
	})
}
