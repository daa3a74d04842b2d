package reports

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Handler exposes report HTTP endpoints.
type Handler struct{ service *Service }

func NewHandler(service *Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/reports", func(r chi.Router) {
		r.Get("/sales/daily", h.dailySales)       // GET /api/v1/reports/sales/daily?from=&to=
		r.Get("/stock/low", h.lowStock)           // GET /api/v1/reports/stock/low
		r.Get("/suppliers/debts", h.supplierDebts) // GET /api/v1/reports/suppliers/debts
	})
}

func (h *Handler) dailySales(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		from = time.Now().AddDate(0, -1, 0)
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		to = time.Now()
	} else {
		to = to.AddDate(0, 0, 1)
	}
	out, err := h.service.DailySales(r.Context(), from, to)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.LowStock(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) supplierDebts(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.SupplierDebts(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, out)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
