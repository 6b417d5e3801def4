package billing

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"github.com/wtr-org/backoffice/internal/platform/httpx"
	"github.com/wtr-org/backoffice/internal/shared"
)

// Handler wires HTTP endpoints for the bill workflow.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
	group    singleflight.Group
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers bill routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/search", h.search)
	r.Get("/monthly-stats", h.monthlyStats)
	r.Get("/overdue", h.overdue)
	r.Get("/export", h.export)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.updateStatus)
	r.Patch("/{id}/payment", h.updatePayment)
	r.Patch("/{id}/vat", h.updateVat)
	r.Patch("/{id}/people", h.updatePeople)
	r.Post("/{id}/recalculate", h.recalculate)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list bills failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", err.Error())
		return
	}
	bill, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, bill)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateBillRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	bill, err := h.service.Create(r.Context(), req, billActor(r), r.Header.Get("X-Idempotency-Key"))
	if err != nil {
		h.logger.Error("create bill failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	h.logger.Info("bill created",
		slog.Int64("id", bill.ID),
		slog.String("invoice_number", bill.InvoiceNumber),
		slog.Float64("grand_total", bill.GrandTotal))
	w.Header().Set("Location", "/bills/"+strconv.FormatInt(bill.ID, 10))
	httpx.JSON(w, http.StatusCreated, bill)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", err.Error())
		return
	}
	var status string
	if err := httpx.DecodeJSON(r, &status); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if !ValidStatus(status) {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Status", "status must be one of: pending, paid, cancelled, awaiting shipment, shipped")
		return
	}
	bill, err := h.service.UpdateStatus(r.Context(), id, status, billActor(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, bill)
}

func (h *Handler) updatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", err.Error())
		return
	}
	var form PaymentForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	bill, err := h.service.UpdatePayment(r.Context(), id, form, billActor(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, bill)
}

func (h *Handler) updateVat(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", err.Error())
		return
	}
	var form VatForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	bill, err := h.service.UpdateVat(r.Context(), id, form, billActor(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, bill)
}

func (h *Handler) updatePeople(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", err.Error())
		return
	}
	var form PeopleForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	bill, err := h.service.UpdatePeople(r.Context(), id, form, billActor(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, bill)
}

func (h *Handler) recalculate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", err.Error())
		return
	}
	bill, err := h.service.Recalculate(r.Context(), id, billActor(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, bill)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", err.Error())
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "bill deleted"})
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	q := SearchQuery{
		Invoice:  r.URL.Query().Get("invoice"),
		Customer: r.URL.Query().Get("customer"),
		Status:   r.URL.Query().Get("status"),
	}
	if raw := r.URL.Query().Get("employee_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Employee ID", err.Error())
			return
		}
		q.EmployeeID = id
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Date", err.Error())
			return
		}
		q.From = &t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Date", err.Error())
			return
		}
		q.To = &t
	}
	out, err := h.service.Search(r.Context(), q)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) monthlyStats(w http.ResponseWriter, r *http.Request) {
	year := 0
	month := time.January
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Year", err.Error())
			return
		}
		year = y
		month = time.Month(1)
		if rawMonth := r.URL.Query().Get("month"); rawMonth != "" {
			m, err := strconv.Atoi(rawMonth)
			if err != nil || m < 1 || m > 12 {
				httpx.Problem(w, http.StatusBadRequest, "Invalid Month", "month must be 1-12")
				return
			}
			month = time.Month(m)
		}
	}

	key := fmt.Sprintf("monthly-stats:%d-%d", year, month)
	v, err, _ := h.group.Do(key, func() (any, error) {
		return h.service.MonthlyStats(r.Context(), year, month)
	})
	if err != nil {
		h.logger.Error("monthly stats failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, v)
}

func (h *Handler) overdue(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.Overdue(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	var q SearchQuery
	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Date", err.Error())
			return
		}
		q.From = &t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Date", err.Error())
			return
		}
		q.To = &t
	}

	key := "export:" + r.URL.Query().Get("from") + ":" + r.URL.Query().Get("to")
	v, err, _ := h.group.Do(key, func() (any, error) {
		return h.service.Search(r.Context(), q)
	})
	if err != nil {
		h.logger.Error("export bills failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	bills := v.([]Bill)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="bills.csv"`)
	if err := WriteCSV(w, bills, h.service.clock.Now()); err != nil {
		h.logger.Error("write bills csv failed", slog.Any("error", err))
	}
}

func billActor(r *http.Request) int64 {
	if id, ok := shared.IdentityFromContext(r.Context()); ok {
		return id.EmployeeID
	}
	return 0
}
