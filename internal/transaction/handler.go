package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	internal "github.com/frahmantamala/finance-dashboard/internal"
	"github.com/frahmantamala/finance-dashboard/internal/auth"
	"github.com/frahmantamala/finance-dashboard/internal/transport"
	"github.com/frahmantamala/finance-dashboard/internal/user"
	"github.com/frahmantamala/finance-dashboard/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ResolveOwner(sessionUser *user.User, shareCode string) (ResolvedOwner, error)
	List(owner ResolvedOwner, f ListFilters) ([]*Transaction, error)
	Get(id int64, sessionUser *user.User) (*Transaction, error)
	Create(userID int64, dto TransactionDTO) (*Transaction, error)
	Update(id, userID int64, dto TransactionDTO) (*Transaction, error)
	Delete(id, userID int64) (*Transaction, error)
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

// ListTransactions lists the session user's transactions, or another user's
// when a valid shareCode is supplied.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filters := ListFilters{
		Context: query.Get("context"),
		Type:    query.Get("type"),
	}
	if raw := query.Get("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			h.WriteError(w, http.StatusBadRequest, "invalid month")
			return
		}
		filters.Month = month
	}
	if raw := query.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1 {
			h.WriteError(w, http.StatusBadRequest, "invalid year")
			return
		}
		filters.Year = year
	}

	sessionUser := auth.UserFromContext(r.Context())
	owner, err := h.Service.ResolveOwner(sessionUser, query.Get("shareCode"))
	if err != nil {
		switch {
		case errors.Is(err, ErrShareCodeInvalid):
			h.WriteError(w, http.StatusNotFound, "invalid share code")
		case errors.Is(err, ErrNotAuthenticated):
			h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		default:
			h.Logger.Error("ListTransactions: owner resolution failed", "error", err)
			h.WriteError(w, http.StatusInternalServerError, "failed to get transactions")
		}
		return
	}

	transactions, err := h.Service.List(owner, filters)
	if err != nil {
		h.Logger.Error("ListTransactions: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get transactions")
		return
	}

	if transactions == nil {
		transactions = []*Transaction{}
	}
	h.WriteJSON(w, http.StatusOK, transactions)
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	tx, err := h.Service.Get(id, auth.UserFromContext(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			h.WriteError(w, http.StatusNotFound, "transaction not found")
		case errors.Is(err, ErrNotOwner):
			h.WriteError(w, http.StatusForbidden, "forbidden")
		default:
			h.Logger.Error("GetTransaction: service error", "error", err, "transaction_id", id)
			h.WriteError(w, http.StatusInternalServerError, "failed to get transaction")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, tx)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	sessionUser := auth.UserFromContext(r.Context())
	if sessionUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.Service.Create(sessionUser.ID, dto)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			h.HandleServiceError(w, err)
			return
		}
		h.Logger.Error("CreateTransaction: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to create transaction")
		return
	}

	h.WriteJSON(w, http.StatusOK, tx)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	sessionUser := auth.UserFromContext(r.Context())
	if sessionUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.Service.Update(id, sessionUser.ID, dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			h.WriteError(w, http.StatusNotFound, "transaction not found")
		case errors.Is(err, ErrNotOwner):
			h.WriteError(w, http.StatusForbidden, "forbidden")
		default:
			if _, ok := internal.IsAppError(err); ok {
				h.HandleServiceError(w, err)
				return
			}
			h.Logger.Error("UpdateTransaction: service error", "error", err, "transaction_id", id)
			h.WriteError(w, http.StatusInternalServerError, "failed to update transaction")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, tx)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	sessionUser := auth.UserFromContext(r.Context())
	if sessionUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	tx, err := h.Service.Delete(id, sessionUser.ID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			h.WriteError(w, http.StatusNotFound, "transaction not found")
		case errors.Is(err, ErrNotOwner):
			h.WriteError(w, http.StatusForbidden, "forbidden")
		default:
			h.Logger.Error("DeleteTransaction: service error", "error", err, "transaction_id", id)
			h.WriteError(w, http.StatusInternalServerError, "failed to delete transaction")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"transaction": tx,
	})
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		h.WriteError(w, http.StatusBadRequest, "invalid transaction id")
		return 0, false
	}
	return id, true
}
