package user

import (
	"context"
	"net/http"

	"github.com/arjav-14/cost-console/internal/transport"
	"github.com/arjav-14/cost-console/pkg/logger"
)

type ServiceAPI interface {
	GetByID(ctx context.Context, userID int64) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

// GetCurrentUser handles GET /users/me.
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	u, ok := FromContext(r.Context())
	if !ok || u == nil {
		h.WriteError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	current, err := h.Service.GetByID(r.Context(), u.ID)
	if err != nil {
		h.Logger.Error("GetCurrentUser: lookup failed", "user_id", u.ID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, current)
}
