package service

import (
	"context"

	"bookman-backend/internal/domains/person/model"
)

// PersonCollection is one listing page plus the bounded remaining-page
// estimate.
type PersonCollection struct {
	Persons   []*model.Person
	PageCount int
}

// Service is the librarian-facing person lifecycle: create, fetch, partial
// update, delete, paginated listing.
type Service interface {
	Create(ctx context.Context, req model.CreatePersonRequest) (*model.Person, error)
	Get(ctx context.Context, id string) (*model.Person, error)
	Patch(ctx context.Context, id string, req model.PatchPersonRequest) (*model.Person, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page int) (*PersonCollection, error)
}
