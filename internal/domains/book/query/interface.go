package query

import (
	"context"
	"time"
)

const (
	PageSize     = 25
	MaxPageCount = 10
)

// BookResultAuthor is one author on a search hit. Hits carry the book's
// complete author roster, not only the author that matched the query.
type BookResultAuthor struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type BookResult struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Authors     []BookResultAuthor `json:"authors"`
	CreatedDate time.Time          `json:"createdDate"`
	UpdatedDate time.Time          `json:"updatedDate"`
}

type BookResultSet struct {
	Results []BookResult `json:"results"`
	// PageCount estimates how many pages exist beyond the requested one,
	// capped at MaxPageCount.
	PageCount int `json:"pageCount"`
}

// SearchService matches books by title substring or by any author's first
// or last name substring; a book matched through several authors appears
// once.
type SearchService interface {
	SearchAll(ctx context.Context, query string, page int) (*BookResultSet, error)
}
