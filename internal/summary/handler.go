package summary

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerly/ledgerly/internal/auth"
	"github.com/ledgerly/ledgerly/internal/platform/httpx"
)

// Handler serves the derived financial overview.
type Handler struct {
	logger      *slog.Logger
	service     *Service
	requireAuth auth.Middleware
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, requireAuth auth.Middleware) *Handler {
	return &Handler{logger: logger, service: service, requireAuth: requireAuth}
}

// MountRoutes registers summary routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.requireAuth)
	r.Get("/", h.summarize)
}

func (h *Handler) summarize(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.Unauthorized("No token, authorization denied"))
		return
	}

	window, err := ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	result, err := h.service.Summarize(r.Context(), ownerID, window)
	if err != nil {
		h.logger.Error("summarize", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, result)
}
