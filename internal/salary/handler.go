package salary

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerly/ledgerly/internal/auth"
	"github.com/ledgerly/ledgerly/internal/platform/httpx"
)

// Handler manages salary record endpoints.
type Handler struct {
	logger      *slog.Logger
	service     *Service
	requireAuth auth.Middleware
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, requireAuth auth.Middleware) *Handler {
	return &Handler{logger: logger, service: service, requireAuth: requireAuth}
}

// MountRoutes registers salary routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.requireAuth)
	r.Get("/", h.current)
	r.Post("/", h.set)
	r.Put("/", h.update)
}

type amountRequest struct {
	Amount float64 `json:"amount"`
}

// placeholder mirrors the "no salary set" response: amount 0, nothing else.
type placeholder struct {
	Amount float64 `json:"amount"`
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.Unauthorized("No token, authorization denied"))
		return
	}

	sal, err := h.service.Current(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("get salary", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if sal == nil {
		httpx.JSON(w, http.StatusOK, placeholder{Amount: 0})
		return
	}

	httpx.JSON(w, http.StatusOK, sal)
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.Unauthorized("No token, authorization denied"))
		return
	}

	var req amountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.Validation("Invalid request body"))
		return
	}

	sal, err := h.service.Set(r.Context(), ownerID, req.Amount)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, sal)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.Unauthorized("No token, authorization denied"))
		return
	}

	var req amountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.Validation("Invalid request body"))
		return
	}

	sal, err := h.service.Update(r.Context(), ownerID, req.Amount)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, sal)
}
