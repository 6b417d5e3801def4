package company

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/wtr-org/backoffice/internal/platform/httpx"
)

// Handler wires HTTP endpoints for company settings.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers company settings routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.current)
	r.Put("/", h.save)
	r.Get("/status", h.status)
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	configured, err := h.service.SetupStatus(r.Context())
	if err != nil {
		h.logger.Error("company setup status failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	msg := "company profile is not configured yet"
	if configured {
		msg = "company profile is configured"
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"is_setup": configured, "message": msg})
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.Current(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, s)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	var form SettingsForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	s, err := h.service.Save(r.Context(), form)
	if err != nil {
		h.logger.Error("save company settings failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, s)
}
