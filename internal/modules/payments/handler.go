package payments

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes payment HTTP endpoints, including the provider callback.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/payments", func(r chi.Router) {
		r.Post("/push", h.initiatePush)     // POST /api/v1/payments/push
		r.Post("/callback", h.callback)     // POST /api/v1/payments/callback
		r.Get("/", h.list)                  // GET  /api/v1/payments
		r.Get("/{id}", h.get)               // GET  /api/v1/payments/{id}
	})
}

func (h *Handler) initiatePush(w http.ResponseWriter, r *http.Request) {
	var req InitiatePushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	t, err := h.service.InitiatePush(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusAccepted, t)
}

// callback receives the provider's out-of-band result. The raw body is kept
// verbatim so the audit trail shows exactly what the provider sent.
func (h *Handler) callback(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	t, err := h.service.HandleCallback(r.Context(), raw)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, t)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.GetTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, t)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ts, err := h.service.ListTransactions(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, ts)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrTransactionNotFound):
		return http.StatusNotFound
	case strings.Contains(err.Error(), "required"),
		strings.Contains(err.Error(), "invalid"),
		strings.Contains(err.Error(), "malformed"),
		strings.Contains(err.Error(), "must be"):
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
