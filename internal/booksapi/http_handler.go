package booksapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"bookcatalog/internal/httpx"
	"bookcatalog/internal/validate"
)

type HTTPHandler struct {
	repo Repository
}

func NewHTTPHandler(repo Repository) *HTTPHandler {
	return &HTTPHandler{repo: repo}
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func (h *HTTPHandler) writeSummaries(w http.ResponseWriter, r *http.Request, books []Book, err error) {
	if err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	summaries := make([]BookSummary, 0, len(books))
	for _, b := range books {
		summaries = append(summaries, toSummary(b))
	}
	httpx.JSONSuccessWithRequest(r, w, summaries, nil)
}

// @Summary List books
// @Description Get all books, optionally filtered by exact genre or publish date
// @Tags books
// @Produce json
// @Param genre query string false "Filter by genre (exact, case-sensitive)"
// @Param date query string false "Filter by publish date (YYYY-MM-DD, time-of-day ignored)"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /api/books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	if genre := r.URL.Query().Get("genre"); genre != "" {
		books, err := h.repo.ListByGenre(r.Context(), genre)
		h.writeSummaries(w, r, books, err)
		return
	}
	if date := r.URL.Query().Get("date"); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "INVALID_DATE", "Date must be formatted YYYY-MM-DD", nil)
			return
		}
		books, err := h.repo.ListByPublishDate(r.Context(), day)
		h.writeSummaries(w, r, books, err)
		return
	}
	books, err := h.repo.List(r.Context())
	h.writeSummaries(w, r, books, err)
}

// @Summary Get book by id
// @Tags books
// @Produce json
// @Param id path int true "Book id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return
	}
	b, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, toSummary(b), nil)
}

// @Summary Get book details by id
// @Tags books
// @Produce json
// @Param id path int true "Book id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/books/{id}/details [get]
func (h *HTTPHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return
	}
	b, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, toDetail(b), nil)
}

// @Summary List authors
// @Tags authors
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Router /api/authors [get]
func (h *HTTPHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.repo.ListAuthors(r.Context())
	if err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, authors, nil)
}

// @Summary List books by author
// @Tags authors
// @Produce json
// @Param authorId path int true "Author id"
// @Success 200 {object} httpx.SuccessResponse
// @Router /api/authors/{authorId}/books [get]
func (h *HTTPHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, ok := pathID(r, "authorId")
	if !ok {
		httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "Author not found", nil)
		return
	}
	books, err := h.repo.ListByAuthor(r.Context(), authorID)
	h.writeSummaries(w, r, books, err)
}

// @Summary Create a book
// @Tags books
// @Accept json
// @Produce json
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /api/books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var b Book
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "INVALID_BODY", "Request body is not valid JSON", nil)
		return
	}
	if details := validate.Struct(b); details != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", details)
		return
	}

	if err := h.repo.Create(r.Context(), &b); err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/books/%d", b.ID))
	httpx.JSONSuccessCreated(w, toSummary(b))
}

// @Summary Replace a book
// @Tags books
// @Accept json
// @Success 204
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return
	}

	var b Book
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "INVALID_BODY", "Request body is not valid JSON", nil)
		return
	}
	if details := validate.Struct(b); details != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", details)
		return
	}
	if b.Version < 1 {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", []httpx.ErrorDetail{
			{Field: "version", Message: "version is required"},
		})
		return
	}
	if b.ID != id {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "ID_MISMATCH", "Path id and body id disagree", nil)
		return
	}

	err := h.repo.Update(r.Context(), &b)
	switch {
	case err == nil:
		httpx.JSONSuccessNoContent(w)
	case errors.Is(err, ErrConflict):
		// The conflict signal cannot tell a delete from a concurrent write;
		// re-check existence to pick between not-found and a genuine race.
		exists, exErr := h.repo.Exists(r.Context(), id)
		if exErr != nil {
			httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
			return
		}
		if !exists {
			httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "CONFLICT", "Concurrent update detected", nil)
	default:
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

// @Summary Delete a book
// @Tags books
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return
	}

	b, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, b, nil)
}
