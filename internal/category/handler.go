package category

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/finance-dashboard/internal/transport"
	"github.com/frahmantamala/finance-dashboard/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(contextFilter string) ([]*Category, error)
	Create(dto CategoryDTO) (*Category, error)
	Update(id int64, dto CategoryDTO) (*Category, error)
	Delete(id int64) (*Category, error)
	Seed() (int, error)
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

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	contextFilter := r.URL.Query().Get("context")

	categories, err := h.Service.List(contextFilter)
	if err != nil {
		h.Logger.Error("GetCategories: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get categories")
		return
	}

	if categories == nil {
		categories = []*Category{}
	}
	h.WriteJSON(w, http.StatusOK, categories)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var dto CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cat, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("CreateCategory: service error", "error", err, "name", dto.Name)
		if errors.Is(err, ErrDuplicateName) {
			h.WriteError(w, http.StatusConflict, "category already exists")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, cat)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	var dto CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cat, err := h.Service.Update(id, dto)
	if err != nil {
		h.Logger.Error("UpdateCategory: service error", "error", err, "category_id", id)
		switch {
		case errors.Is(err, ErrNotFound):
			h.WriteError(w, http.StatusNotFound, "category not found")
		case errors.Is(err, ErrDuplicateName):
			h.WriteError(w, http.StatusConflict, "category already exists")
		default:
			h.HandleServiceError(w, err)
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, cat)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	cat, err := h.Service.Delete(id)
	if err != nil {
		h.Logger.Error("DeleteCategory: service error", "error", err, "category_id", id)
		if errors.Is(err, ErrNotFound) {
			h.WriteError(w, http.StatusNotFound, "category not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"category": cat,
	})
}

func (h *Handler) SeedCategories(w http.ResponseWriter, r *http.Request) {
	count, err := h.Service.Seed()
	if err != nil {
		h.Logger.Error("SeedCategories: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to seed categories")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   count,
	})
}

func parseID(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}
