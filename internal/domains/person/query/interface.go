package query

import (
	"context"
	"time"
)

const (
	PageSize     = 25
	MaxPageCount = 10
)

// PersonResult is the read-model row returned by search; it never passes
// through the domain entity.
type PersonResult struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	CreatedDate time.Time `json:"createdDate"`
	UpdatedDate time.Time `json:"updatedDate"`
}

type PersonResultSet struct {
	Results []PersonResult `json:"results"`
	// PageCount estimates how many pages exist beyond the requested one,
	// capped at MaxPageCount.
	PageCount int `json:"pageCount"`
}

// SearchService matches persons by first or last name substring.
type SearchService interface {
	SearchAll(ctx context.Context, query string, page int) (*PersonResultSet, error)
}
