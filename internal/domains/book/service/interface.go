package service

import (
	"context"

	"bookman-backend/internal/domains/book/model"
	personmodel "bookman-backend/internal/domains/person/model"
)

// BookRecord pairs a book with its resolved author records. Authors whose
// person row has been deleted are simply absent.
type BookRecord struct {
	Book    *model.Book
	Authors []*personmodel.Person
}

// BookCollection is one listing page plus the bounded remaining-page
// estimate.
type BookCollection struct {
	Books     []BookRecord
	PageCount int
}

// Service is the librarian-facing book lifecycle: create, fetch, partial
// update, delete, paginated listing. Author ids are accepted as strings and
// validated here.
type Service interface {
	Create(ctx context.Context, req model.CreateBookRequest) (*BookRecord, error)
	Get(ctx context.Context, id string) (*BookRecord, error)
	Patch(ctx context.Context, id string, req model.PatchBookRequest) (*BookRecord, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page int) (*BookCollection, error)
}
