package user

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/finance-dashboard/internal/transport"
	"github.com/frahmantamala/finance-dashboard/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetByShareCode(code string) (*User, error)
	GetByID(id int64) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// GetSharedUser handles GET /shared/{code}. The endpoint is public: the
// share code alone grants a read-only view, so an unknown code must leak
// nothing beyond "not found".
func (h *Handler) GetSharedUser(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		h.WriteError(w, http.StatusBadRequest, "share code is required")
		return
	}

	u, err := h.Service.GetByShareCode(code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.WriteError(w, http.StatusNotFound, "invalid share code")
			return
		}
		h.Logger.Error("GetSharedUser: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}
