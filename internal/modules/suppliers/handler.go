package suppliers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes supplier debt-ledger HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/suppliers", func(r chi.Router) {
		r.Post("/", h.create)                      // POST   /api/v1/suppliers
		r.Get("/", h.list)                         // GET    /api/v1/suppliers
		r.Get("/{id}", h.get)                      // GET    /api/v1/suppliers/{id}
		r.Delete("/{id}", h.delete)                // DELETE /api/v1/suppliers/{id}
		r.Post("/{id}/purchases", h.recordPurchase) // POST  /api/v1/suppliers/{id}/purchases
		r.Post("/{id}/payments", h.recordPayment)   // POST  /api/v1/suppliers/{id}/payments
		r.Post("/{id}/settle", h.settleFull)        // POST  /api/v1/suppliers/{id}/settle
		r.Get("/{id}/ledger", h.history)            // GET   /api/v1/suppliers/{id}/ledger
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sup, err := h.service.CreateSupplier(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, sup)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	sups, err := h.service.ListSuppliers(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sups)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	sup, err := h.service.GetSupplier(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sup)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSupplier(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (h *Handler) recordPurchase(w http.ResponseWriter, r *http.Request) {
	h.movement(w, r, h.service.RecordPurchase)
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	h.movement(w, r, h.service.RecordPayment)
}

type movementFunc func(ctx context.Context, id string, req MovementRequest) (*Supplier, error)

func (h *Handler) movement(w http.ResponseWriter, r *http.Request, apply movementFunc) {
	var req MovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sup, err := apply(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sup)
}

func (h *Handler) settleFull(w http.ResponseWriter, r *http.Request) {
	sup, err := h.service.SettleFull(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sup)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, entries)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSupplierNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidAmount):
		return http.StatusUnprocessableEntity
	case strings.Contains(err.Error(), "invalid"), strings.Contains(err.Error(), "required"):
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
