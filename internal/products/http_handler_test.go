package products

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/testutil"
)

func TestHTTPHandler_List(t *testing.T) {
	handler := NewHTTPHandler(NewStore())

	t.Run("all products", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/products", nil)

		handler.List(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)

		data := resp.Body["data"].([]interface{})
		require.Len(t, data, 3)
		first := data[0].(map[string]interface{})
		assert.Equal(t, "Tomato Soup", first["name"])
		assert.Equal(t, "Groceries", first["category"])
	})

	t.Run("category filter is case-insensitive", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/products?category=groceries", nil)

		handler.List(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)

		data := resp.Body["data"].([]interface{})
		require.Len(t, data, 1)
		assert.Equal(t, "Tomato Soup", data[0].(map[string]interface{})["name"])
	})

	t.Run("unknown category is an empty list", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/products?category=electronics", nil)

		handler.List(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Len(t, resp.Body["data"], 0)
	})
}

func TestHTTPHandler_Get(t *testing.T) {
	handler := NewHTTPHandler(NewStore())

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/products/3", nil)
		r.SetPathValue("id", "3")

		handler.Get(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)

		p := resp.Body["data"].(map[string]interface{})
		assert.Equal(t, "Hammer", p["name"])
		assert.Equal(t, "16.99", p["price"])
	})

	t.Run("absent id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/products/999", nil)
		r.SetPathValue("id", "999")

		handler.Get(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/products/soup", nil)
		r.SetPathValue("id", "soup")

		handler.Get(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
