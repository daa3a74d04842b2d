package sales

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mbewe/duka-backend/internal/modules/cart"
)

// Handler exposes sales HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/sales", func(r chi.Router) {
		r.Post("/", h.commit)                          // POST /api/v1/sales
		r.Get("/", h.list)                             // GET  /api/v1/sales?from=&to=
		r.Get("/sync-failures", h.syncFailures)        // GET  /api/v1/sales/sync-failures
		r.Get("/{id}", h.get)                          // GET  /api/v1/sales/{id}
		r.Get("/{id}/receipt", h.receipt)              // GET  /api/v1/sales/{id}/receipt
	})
}

func (h *Handler) commit(w http.ResponseWriter, r *http.Request) {
	var req CommitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	result, err := h.service.Commit(r.Context(), req)
	if err != nil {
		var partial *PartialStockSyncError
		if errors.As(err, &partial) {
			// The sale is durable; the operator must know both facts.
			failed := make([]string, 0, len(partial.FailedProducts))
			for _, id := range partial.FailedProducts {
				failed = append(failed, id.String())
			}
			respond(w, http.StatusBadGateway, map[string]interface{}{
				"error":           partial.Error(),
				"sale_id":         partial.SaleID.String(),
				"failed_products": failed,
			})
			return
		}
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, result)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	sale, err := h.service.GetSale(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sale)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	from, to := dateRange(r)
	sales, err := h.service.ListSales(r.Context(), from, to)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sales)
}

func (h *Handler) receipt(w http.ResponseWriter, r *http.Request) {
	text, err := h.service.Receipt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

func (h *Handler) syncFailures(w http.ResponseWriter, r *http.Request) {
	failures, err := h.service.PendingSyncFailures(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, failures)
}

func dateRange(r *http.Request) (time.Time, time.Time) {
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		from = time.Now().AddDate(0, -1, 0)
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		to = time.Now()
	} else {
		to = to.AddDate(0, 0, 1) // inclusive end date
	}
	return from, to
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSaleNotFound), errors.Is(err, cart.ErrCartNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyCart), errors.Is(err, cart.ErrExceedsStock):
		return http.StatusConflict
	case errors.Is(err, ErrSaleWriteFailed):
		return http.StatusServiceUnavailable
	case strings.Contains(err.Error(), "invalid"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}
