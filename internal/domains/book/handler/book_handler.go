package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookman-backend/internal/domains/book/model"
	"bookman-backend/internal/domains/book/query"
	"bookman-backend/internal/domains/book/service"
	personmodel "bookman-backend/internal/domains/person/model"
	"bookman-backend/internal/shared/apperr"
	"bookman-backend/internal/shared/response"
)

type BookHandler struct {
	service service.Service
	search  query.SearchService
}

func NewBookHandler(svc service.Service, search query.SearchService) *BookHandler {
	return &BookHandler{service: svc, search: search}
}

// writeError maps domain failures to their stable codes inside a 200
// envelope; anything unclassified is a server fault. Person failures show
// up here because book writes reference author ids.
func (h *BookHandler) writeError(c *gin.Context, err error) {
	var noPerson *personmodel.NoPersonError

	switch {
	case errors.Is(err, model.ErrBookNotFound):
		response.Failure(c, response.CodeBookNotFound, err.Error())
	case errors.Is(err, model.ErrDuplicateBook):
		response.Failure(c, response.CodeDuplicateBook, err.Error())
	case errors.Is(err, model.ErrIllegalBookState):
		response.Failure(c, response.CodeIllegalBookState, err.Error())
	case errors.As(err, &noPerson):
		response.Failure(c, response.CodePersonNotFound, err.Error())
	case errors.Is(err, personmodel.ErrPersonNotFound):
		response.Failure(c, response.CodePersonNotFound, err.Error())
	case errors.Is(err, apperr.ErrIllegalArgument):
		response.Failure(c, response.CodeIllegalArgument, err.Error())
	default:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("book request failed")
		response.Fault(c)
	}
}

func bookResponse(record *service.BookRecord) model.BookResponse {
	return model.NewBookResponse(record.Book, record.Authors)
}

// POST /books
func (h *BookHandler) Create(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Failure(c, response.CodeIllegalArgument, "malformed request body")
		return
	}

	record, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, bookResponse(record))
}

// GET /books/:id
func (h *BookHandler) Get(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, bookResponse(record))
}

// PATCH /books/:id
func (h *BookHandler) Patch(c *gin.Context) {
	var req model.PatchBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Failure(c, response.CodeIllegalArgument, "malformed request body")
		return
	}

	record, err := h.service.Patch(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, bookResponse(record))
}

// DELETE /books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, nil)
}

// GET /books?page=N
func (h *BookHandler) List(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}

	collection, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		h.writeError(c, err)
		return
	}

	books := make([]model.BookResponse, len(collection.Books))
	for i := range collection.Books {
		books[i] = bookResponse(&collection.Books[i])
	}

	response.OK(c, model.BookCollectionResponse{
		Books:     books,
		PageCount: collection.PageCount,
	})
}

// GET /books/search?query=&page=N
func (h *BookHandler) Search(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}

	resultSet, err := h.search.SearchAll(c.Request.Context(), c.Query("query"), page)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, resultSet)
}

// pageParam reads ?page, defaulting to 0. Writes the error itself so
// callers just bail on !ok.
func pageParam(c *gin.Context) (int, bool) {
	raw := c.Query("page")
	if raw == "" {
		return 0, true
	}

	page, err := strconv.Atoi(raw)
	if err != nil {
		response.Failure(c, response.CodeIllegalArgument, "page should be an integer")
		return 0, false
	}

	return page, true
}
