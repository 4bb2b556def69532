package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookman-backend/internal/domains/book/model"
	"bookman-backend/internal/domains/book/query"
	"bookman-backend/internal/domains/book/service"
	personmodel "bookman-backend/internal/domains/person/model"
	"bookman-backend/internal/shared/clock"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type stubService struct {
	createFn func(model.CreateBookRequest) (*service.BookRecord, error)
	getFn    func(string) (*service.BookRecord, error)
	patchFn  func(string, model.PatchBookRequest) (*service.BookRecord, error)
	deleteFn func(string) error
	listFn   func(int) (*service.BookCollection, error)
}

func (s *stubService) Create(_ context.Context, req model.CreateBookRequest) (*service.BookRecord, error) {
	return s.createFn(req)
}

func (s *stubService) Get(_ context.Context, id string) (*service.BookRecord, error) {
	return s.getFn(id)
}

func (s *stubService) Patch(_ context.Context, id string, req model.PatchBookRequest) (*service.BookRecord, error) {
	return s.patchFn(id, req)
}

func (s *stubService) Delete(_ context.Context, id string) error {
	return s.deleteFn(id)
}

func (s *stubService) List(_ context.Context, page int) (*service.BookCollection, error) {
	return s.listFn(page)
}

type stubSearch struct {
	searchFn func(string, int) (*query.BookResultSet, error)
}

func (s *stubSearch) SearchAll(_ context.Context, q string, page int) (*query.BookResultSet, error) {
	return s.searchFn(q, page)
}

type envelope struct {
	Value json.RawMessage `json:"value"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newRouter(svc service.Service, search query.SearchService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookHandler(svc, search)

	router := gin.New()
	router.POST("/books", h.Create)
	router.GET("/books", h.List)
	router.GET("/books/search", h.Search)
	router.GET("/books/:id", h.Get)
	router.PATCH("/books/:id", h.Patch)
	router.DELETE("/books/:id", h.Delete)
	return router
}

func perform(t *testing.T, router *gin.Engine, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func testRecord(t *testing.T) *service.BookRecord {
	t.Helper()

	manual := &clock.Manual{Instant: baseTime}
	author := personmodel.NewPersonFactory(manual).Create(personmodel.FullName{
		FirstName: "Michael",
		LastName:  "Ende",
	})

	book := model.NewBookFactory(manual).Create()
	require.NoError(t, book.UpdateTitle("Momo"))
	require.NoError(t, book.UpdateAuthors([]model.BookAuthor{{PersonID: author.ID}}))

	return &service.BookRecord{Book: book, Authors: []*personmodel.Person{author}}
}

func TestCreate(t *testing.T) {
	record := testRecord(t)
	router := newRouter(&stubService{
		createFn: func(req model.CreateBookRequest) (*service.BookRecord, error) {
			require.NotNil(t, req.Title)
			assert.Equal(t, "Momo", *req.Title)
			assert.Len(t, req.AuthorIDs, 1)
			return record, nil
		},
	}, &stubSearch{})

	rec, env := perform(t, router, http.MethodPost, "/books",
		`{"title":"Momo","authorIds":["`+record.Authors[0].ID.String()+`"]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, env.Error)

	var value model.BookResponse
	require.NoError(t, json.Unmarshal(env.Value, &value))
	assert.Equal(t, record.Book.ID.String(), value.ID)
	assert.Equal(t, "Momo", value.Title)
	require.Len(t, value.Authors, 1)
	assert.Equal(t, "Ende", value.Authors[0].LastName)
}

func TestCreateUnknownAuthor(t *testing.T) {
	unknown := personmodel.NewPersonID()
	router := newRouter(&stubService{
		createFn: func(model.CreateBookRequest) (*service.BookRecord, error) {
			return nil, &personmodel.NoPersonError{IDs: []personmodel.PersonID{unknown}}
		},
	}, &stubSearch{})

	rec, env := perform(t, router, http.MethodPost, "/books",
		`{"authorIds":["`+unknown.String()+`"]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, 2000, env.Error.Code)
	assert.Contains(t, env.Error.Message, unknown.String())
}

func TestGetNotFound(t *testing.T) {
	router := newRouter(&stubService{
		getFn: func(string) (*service.BookRecord, error) {
			return nil, model.ErrBookNotFound
		},
	}, &stubSearch{})

	rec, env := perform(t, router, http.MethodGet, "/books/"+model.NewBookID().String(), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, 1000, env.Error.Code)
}

func TestGetIllegalID(t *testing.T) {
	svc := &stubService{
		getFn: func(id string) (*service.BookRecord, error) {
			_, err := model.ParseBookID(id)
			return nil, err
		},
	}
	router := newRouter(svc, &stubSearch{})

	rec, env := perform(t, router, http.MethodGet, "/books/not-a-uuid", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, 3000, env.Error.Code)
	assert.Contains(t, env.Error.Message, "Illegal Book ID string")
}

func TestGetInternalFault(t *testing.T) {
	router := newRouter(&stubService{
		getFn: func(string) (*service.BookRecord, error) {
			return nil, errors.New("connection refused")
		},
	}, &stubSearch{})

	rec, env := perform(t, router, http.MethodGet, "/books/"+model.NewBookID().String(), "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, 5000, env.Error.Code)
}

func TestPatchDistinguishesAbsentFromEmptyAuthors(t *testing.T) {
	record := testRecord(t)

	t.Run("absent", func(t *testing.T) {
		router := newRouter(&stubService{
			patchFn: func(_ string, req model.PatchBookRequest) (*service.BookRecord, error) {
				assert.Nil(t, req.AuthorIDs)
				return record, nil
			},
		}, &stubSearch{})

		rec, env := perform(t, router, http.MethodPatch, "/books/"+record.Book.ID.String(),
			`{"title":"Momo"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, env.Error)
	})

	t.Run("empty", func(t *testing.T) {
		router := newRouter(&stubService{
			patchFn: func(_ string, req model.PatchBookRequest) (*service.BookRecord, error) {
				require.NotNil(t, req.AuthorIDs)
				assert.Empty(t, *req.AuthorIDs)
				return record, nil
			},
		}, &stubSearch{})

		rec, env := perform(t, router, http.MethodPatch, "/books/"+record.Book.ID.String(),
			`{"authorIds":[]}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, env.Error)
	})
}

func TestDelete(t *testing.T) {
	id := model.NewBookID()
	router := newRouter(&stubService{
		deleteFn: func(got string) error {
			assert.Equal(t, id.String(), got)
			return nil
		},
	}, &stubSearch{})

	rec, env := perform(t, router, http.MethodDelete, "/books/"+id.String(), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, env.Error)
	assert.Equal(t, "null", string(env.Value))
}

func TestList(t *testing.T) {
	record := testRecord(t)
	router := newRouter(&stubService{
		listFn: func(page int) (*service.BookCollection, error) {
			assert.Equal(t, 1, page)
			return &service.BookCollection{
				Books:     []service.BookRecord{*record},
				PageCount: 2,
			}, nil
		},
	}, &stubSearch{})

	rec, env := perform(t, router, http.MethodGet, "/books?page=1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, env.Error)

	var value model.BookCollectionResponse
	require.NoError(t, json.Unmarshal(env.Value, &value))
	require.Len(t, value.Books, 1)
	assert.Equal(t, 2, value.PageCount)
	require.Len(t, value.Books[0].Authors, 1)
}

func TestListBadPageParam(t *testing.T) {
	router := newRouter(&stubService{}, &stubSearch{})

	rec, env := perform(t, router, http.MethodGet, "/books?page=abc", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, 3000, env.Error.Code)
}

func TestSearch(t *testing.T) {
	router := newRouter(&stubService{}, &stubSearch{
		searchFn: func(q string, page int) (*query.BookResultSet, error) {
			assert.Equal(t, "Ende", q)
			assert.Equal(t, 0, page)
			return &query.BookResultSet{
				Results: []query.BookResult{{
					ID:    model.NewBookID().String(),
					Title: "Momo",
					Authors: []query.BookResultAuthor{{
						ID:        personmodel.NewPersonID().String(),
						FirstName: "Michael",
						LastName:  "Ende",
					}},
					CreatedDate: baseTime,
					UpdatedDate: baseTime,
				}},
				PageCount: 1,
			}, nil
		},
	})

	rec, env := perform(t, router, http.MethodGet, "/books/search?query=Ende", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, env.Error)

	var value query.BookResultSet
	require.NoError(t, json.Unmarshal(env.Value, &value))
	require.Len(t, value.Results, 1)
	assert.Equal(t, "Momo", value.Results[0].Title)
	require.Len(t, value.Results[0].Authors, 1)
}
