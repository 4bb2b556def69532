package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookman-backend/internal/domains/person/model"
	"bookman-backend/internal/domains/person/query"
	"bookman-backend/internal/domains/person/service"
	"bookman-backend/internal/shared/apperr"
	"bookman-backend/internal/shared/response"
)

type PersonHandler struct {
	service service.Service
	search  query.SearchService
}

func NewPersonHandler(svc service.Service, search query.SearchService) *PersonHandler {
	return &PersonHandler{service: svc, search: search}
}

// writeError maps domain failures to their stable codes inside a 200
// envelope; anything unclassified is a server fault.
func (h *PersonHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrPersonNotFound):
		response.Failure(c, response.CodePersonNotFound, err.Error())
	case errors.Is(err, model.ErrDuplicatePerson):
		response.Failure(c, response.CodeDuplicatePerson, err.Error())
	case errors.Is(err, model.ErrIllegalPersonState):
		response.Failure(c, response.CodeIllegalPersonState, err.Error())
	case errors.Is(err, apperr.ErrIllegalArgument):
		response.Failure(c, response.CodeIllegalArgument, err.Error())
	default:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("person request failed")
		response.Fault(c)
	}
}

// POST /persons
func (h *PersonHandler) Create(c *gin.Context) {
	var req model.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Failure(c, response.CodeIllegalArgument, "malformed request body")
		return
	}

	person, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, person.ToResponse())
}

// GET /persons/:id
func (h *PersonHandler) Get(c *gin.Context) {
	person, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, person.ToResponse())
}

// PATCH /persons/:id
func (h *PersonHandler) Patch(c *gin.Context) {
	var req model.PatchPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Failure(c, response.CodeIllegalArgument, "malformed request body")
		return
	}

	person, err := h.service.Patch(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, person.ToResponse())
}

// DELETE /persons/:id
func (h *PersonHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, nil)
}

// GET /persons?page=N
func (h *PersonHandler) List(c *gin.Context) {
	page, ok := pageParam(c)
	if !ok {
		return
	}

	collection, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		h.writeError(c, err)
		return
	}

	persons := make([]model.PersonResponse, len(collection.Persons))
	for i, p := range collection.Persons {
		persons[i] = p.ToResponse()
	}

	response.OK(c, model.PersonCollectionResponse{
		Persons:   persons,
		PageCount: collection.PageCount,
	})
}

// GET /persons/search?query=&page=N
func (h *PersonHandler) Search(c *gin.Context) {
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
