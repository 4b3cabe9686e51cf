package products

import (
	"net/http"
	"strconv"

	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	store *Store
}

func NewHTTPHandler(store *Store) *HTTPHandler {
	return &HTTPHandler{store: store}
}

// List handles GET /api/products, optionally filtered by ?category=
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		httpx.JSONSuccessWithRequest(r, w, h.store.ByCategory(category), nil)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, h.store.All(), nil)
}

// Get handles GET /api/products/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		return
	}

	p, err := h.store.ByID(id)
	if err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, p, nil)
}
