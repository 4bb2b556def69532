package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	personmodel "bookman-backend/internal/domains/person/model"
)

const maxTitleLength = 1024

type CreateBookRequest struct {
	Title     *string  `json:"title"`
	AuthorIDs []string `json:"authorIds"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(0, maxTitleLength)),
		validation.Field(&r.AuthorIDs, validation.Each(is.UUID)),
	)
}

// PatchBookRequest fields use pointers to distinguish "absent" from "set to
// empty": a nil AuthorIDs leaves the author set alone, a non-nil empty slice
// removes every author.
type PatchBookRequest struct {
	Title     *string   `json:"title"`
	AuthorIDs *[]string `json:"authorIds"`
}

func (r PatchBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(0, maxTitleLength)),
		validation.Field(&r.AuthorIDs, validation.Each(is.UUID)),
	)
}

type BookResponse struct {
	ID          string                       `json:"id"`
	Title       string                       `json:"title"`
	Authors     []personmodel.PersonResponse `json:"authors"`
	CreatedDate time.Time                    `json:"createdDate"`
	UpdatedDate time.Time                    `json:"updatedDate"`
}

type BookCollectionResponse struct {
	Books     []BookResponse `json:"books"`
	PageCount int            `json:"pageCount"`
}

// NewBookResponse renders a book with its resolved author records.
func NewBookResponse(b *Book, authors []*personmodel.Person) BookResponse {
	authorResponses := make([]personmodel.PersonResponse, len(authors))
	for i, a := range authors {
		authorResponses[i] = a.ToResponse()
	}
	return BookResponse{
		ID:          b.ID.String(),
		Title:       b.Title,
		Authors:     authorResponses,
		CreatedDate: b.CreatedDate,
		UpdatedDate: b.UpdatedDate,
	}
}
