package cart

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mbewe/duka-backend/internal/modules/inventory"
)

// Handler exposes cart HTTP endpoints for checkout sessions.
type Handler struct {
	store    *Store
	products inventory.Service
}

func NewHandler(store *Store, products inventory.Service) *Handler {
	return &Handler{store: store, products: products}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/carts", func(r chi.Router) {
		r.Post("/", h.openCart)                                 // POST   /api/v1/carts
		r.Get("/{id}", h.getCart)                               // GET    /api/v1/carts/{id}
		r.Delete("/{id}", h.discardCart)                        // DELETE /api/v1/carts/{id}
		r.Post("/{id}/lines", h.addLine)                        // POST   /api/v1/carts/{id}/lines
		r.Patch("/{id}/lines/{product_id}", h.adjustLine)       // PATCH  /api/v1/carts/{id}/lines/{pid}
		r.Delete("/{id}/lines/{product_id}", h.removeLine)      // DELETE /api/v1/carts/{id}/lines/{pid}
	})
}

type cartView struct {
	*Cart
	Total string `json:"total"`
}

func view(c *Cart) cartView { return cartView{Cart: c, Total: c.Total().String()} }

func (h *Handler) openCart(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusCreated, view(h.store.Open()))
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.cartFromURL(r)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, view(c))
}

func (h *Handler) discardCart(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid cart id"})
		return
	}
	h.store.Discard(id)
	respond(w, http.StatusNoContent, nil)
}

func (h *Handler) addLine(w http.ResponseWriter, r *http.Request) {
	c, err := h.cartFromURL(r)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.products.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if err := c.Add(p); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, view(c))
}

func (h *Handler) adjustLine(w http.ResponseWriter, r *http.Request) {
	c, err := h.cartFromURL(r)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	pid, err := uuid.Parse(chi.URLParam(r, "product_id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := c.SetQuantity(pid, req.Delta); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, view(c))
}

func (h *Handler) removeLine(w http.ResponseWriter, r *http.Request) {
	c, err := h.cartFromURL(r)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	pid, err := uuid.Parse(chi.URLParam(r, "product_id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	if err := c.Remove(pid); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, view(c))
}

func (h *Handler) cartFromURL(r *http.Request) (*Cart, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, ErrCartNotFound
	}
	return h.store.Get(id)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrLineNotFound), errors.Is(err, ErrCartNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrOutOfStock), errors.Is(err, ErrExceedsStock):
		return http.StatusConflict
	case errors.Is(err, ErrMinQuantity):
		return http.StatusUnprocessableEntity
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
