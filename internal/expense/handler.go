package expense

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ledgerly/ledgerly/internal/auth"
	"github.com/ledgerly/ledgerly/internal/platform/httpx"
)

// Handler manages expense ledger endpoints.
type Handler struct {
	logger      *slog.Logger
	service     *Service
	requireAuth auth.Middleware
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, requireAuth auth.Middleware) *Handler {
	return &Handler{logger: logger, service: service, requireAuth: requireAuth}
}

// MountRoutes registers expense routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.requireAuth)
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

type createRequest struct {
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Date        *time.Time `json:"date"`
	Category    Category   `json:"category"`
}

type updateRequest struct {
	Description *string    `json:"description"`
	Amount      *float64   `json:"amount"`
	Date        *time.Time `json:"date"`
	Category    *Category  `json:"category"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.Unauthorized("No token, authorization denied"))
		return
	}

	expenses, err := h.service.List(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("list expenses", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, expenses)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.Unauthorized("No token, authorization denied"))
		return
	}

	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.Validation("Invalid request body"))
		return
	}

	exp, err := h.service.Create(r.Context(), ownerID, CreateInput{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		Category:    req.Category,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, exp)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.Unauthorized("No token, authorization denied"))
		return
	}

	expenseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, httpx.NotFound("Expense not found"))
		return
	}

	var req updateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.Validation("Invalid request body"))
		return
	}

	exp, err := h.service.Update(r.Context(), ownerID, expenseID, UpdateInput{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		Category:    req.Category,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, exp)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.Unauthorized("No token, authorization denied"))
		return
	}

	expenseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, httpx.NotFound("Expense not found"))
		return
	}

	if err := h.service.Delete(r.Context(), ownerID, expenseID); err != nil {
		httpx.RespondError(w, err)
		return
	}

	httpx.Message(w, http.StatusOK, "Expense deleted", nil)
}
