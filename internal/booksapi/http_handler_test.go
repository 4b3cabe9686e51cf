package booksapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"bookcatalog/internal/testutil"
)

func testBook() Book {
	return Book{
		ID:          1,
		Title:       "The Left Hand of Darkness",
		Genre:       "Science Fiction",
		PublishDate: time.Date(1969, 3, 1, 0, 0, 0, 0, time.UTC),
		Description: "An envoy on a frozen planet.",
		Price:       decimal.RequireFromString("7.99"),
		AuthorID:    1,
		Author:      &Author{ID: 1, Name: "Ursula K. Le Guin"},
		Version:     1,
	}
}

func errorCode(body map[string]interface{}) string {
	errBody, ok := body["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errBody["code"].(string)
	return code
}

func TestHTTPHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(mockRepo)

	t.Run("all books", func(t *testing.T) {
		mockRepo.EXPECT().List(gomock.Any()).Return([]Book{testBook()}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books", nil)

		handler.List(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)

		data := resp.Body["data"].([]interface{})
		assert.Len(t, data, 1)
		summary := data[0].(map[string]interface{})
		assert.Equal(t, "The Left Hand of Darkness", summary["title"])
		assert.Equal(t, "Ursula K. Le Guin", summary["author"])
		assert.Equal(t, "Science Fiction", summary["genre"])
	})

	t.Run("genre query param filters", func(t *testing.T) {
		mockRepo.EXPECT().ListByGenre(gomock.Any(), "Science Fiction").Return([]Book{testBook()}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books?genre=Science+Fiction", nil)

		handler.List(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("error", func(t *testing.T) {
		mockRepo.EXPECT().List(gomock.Any()).Return(nil, context.DeadlineExceeded)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books", nil)

		handler.List(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHTTPHandler_ListFilters(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(mockRepo)

	t.Run("no genre matches is an empty list, not an error", func(t *testing.T) {
		mockRepo.EXPECT().ListByGenre(gomock.Any(), "Horror").Return([]Book{}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books?genre=Horror", nil)

		handler.List(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Len(t, resp.Body["data"], 0)
	})

	t.Run("publish date filter", func(t *testing.T) {
		day := time.Date(1969, 3, 1, 0, 0, 0, 0, time.UTC)
		mockRepo.EXPECT().ListByPublishDate(gomock.Any(), day).Return([]Book{testBook()}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books?date=1969-03-01", nil)

		handler.List(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad date", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books?date=march-first", nil)

		handler.List(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, "INVALID_DATE", errorCode(resp.Body))
	})
}

func TestHTTPHandler_Authors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(mockRepo)

	t.Run("list authors without projection", func(t *testing.T) {
		mockRepo.EXPECT().ListAuthors(gomock.Any()).Return([]Author{{ID: 1, Name: "Ursula K. Le Guin"}}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/authors", nil)

		handler.ListAuthors(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)

		data := resp.Body["data"].([]interface{})
		author := data[0].(map[string]interface{})
		assert.Equal(t, "Ursula K. Le Guin", author["name"])
	})

	t.Run("books by author", func(t *testing.T) {
		mockRepo.EXPECT().ListByAuthor(gomock.Any(), int64(1)).Return([]Book{testBook()}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/authors/1/books", nil)
		r.SetPathValue("authorId", "1")

		handler.ListByAuthor(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHTTPHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(mockRepo)

	t.Run("summary", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), int64(1)).Return(testBook(), nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books/1", nil)
		r.SetPathValue("id", "1")

		handler.Get(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)

		summary := resp.Body["data"].(map[string]interface{})
		assert.Equal(t, "Ursula K. Le Guin", summary["author"])
		assert.NotContains(t, summary, "description")
	})

	t.Run("details", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), int64(1)).Return(testBook(), nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books/1/details", nil)
		r.SetPathValue("id", "1")

		handler.GetDetails(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)

		detail := resp.Body["data"].(map[string]interface{})
		assert.Equal(t, "An envoy on a frozen planet.", detail["description"])
		assert.Equal(t, "7.99", detail["price"])
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().Get(gomock.Any(), int64(42)).Return(Book{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books/42", nil)
		r.SetPathValue("id", "42")

		handler.Get(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHTTPHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(mockRepo)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, b *Book) error {
				b.ID = 3
				b.Version = 1
				b.Author = &Author{ID: b.AuthorID, Name: "Ursula K. Le Guin"}
				return nil
			})

		body := testBook()
		body.ID = 0
		body.Version = 0
		body.Author = nil

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/api/books", body)

		handler.Create(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusCreated, resp.Code)
		assert.Equal(t, "/api/books/3", resp.Header.Get("Location"))
	})

	t.Run("missing publish date", func(t *testing.T) {
		body := map[string]interface{}{
			"title":     "Untitled",
			"genre":     "Science Fiction",
			"author_id": 1,
		}
		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/api/books", body)

		handler.Create(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, "VALIDATION_FAILED", errorCode(resp.Body))
	})
}

func TestHTTPHandler_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(mockRepo)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/api/books/1", testBook())
		r.SetPathValue("id", "1")

		handler.Update(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("id mismatch never touches storage", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/api/books/9", testBook())
		r.SetPathValue("id", "9")

		handler.Update(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, "ID_MISMATCH", errorCode(resp.Body))
	})

	t.Run("conflict on a deleted row becomes not found", func(t *testing.T) {
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(ErrConflict)
		mockRepo.EXPECT().Exists(gomock.Any(), int64(1)).Return(false, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/api/books/1", testBook())
		r.SetPathValue("id", "1")

		handler.Update(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("conflict on a live row escalates", func(t *testing.T) {
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(ErrConflict)
		mockRepo.EXPECT().Exists(gomock.Any(), int64(1)).Return(true, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/api/books/1", testBook())
		r.SetPathValue("id", "1")

		handler.Update(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.Equal(t, "CONFLICT", errorCode(resp.Body))
	})
}

func TestHTTPHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(mockRepo)

	t.Run("success", func(t *testing.T) {
		deleted := testBook()
		deleted.Author = nil
		mockRepo.EXPECT().Delete(gomock.Any(), int64(1)).Return(deleted, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/api/books/1", nil)
		r.SetPathValue("id", "1")

		handler.Delete(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().Delete(gomock.Any(), int64(1)).Return(Book{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/api/books/1", nil)
		r.SetPathValue("id", "1")

		handler.Delete(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
