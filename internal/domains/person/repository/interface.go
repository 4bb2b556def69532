package repository

import (
	"context"

	"bookman-backend/internal/domains/person/model"
)

// Listing window constants. CountPage is a bounded remaining-page estimate,
// never a full-table count.
const (
	PageSize     = 25
	MaxPageCount = 10
)

type Repository interface {
	Get(ctx context.Context, id model.PersonID) (*model.Person, error)
	// GetAll batch-resolves ids in one round trip. Ids without a row are
	// silently omitted; the caller notices gaps. Empty input returns empty
	// without querying.
	GetAll(ctx context.Context, ids []model.PersonID) ([]*model.Person, error)
	Save(ctx context.Context, person *model.Person) error
	Update(ctx context.Context, person *model.Person) error
	Delete(ctx context.Context, id model.PersonID) error
	GetPage(ctx context.Context, page int) ([]*model.Person, error)
	CountPage(ctx context.Context, offsetPage int) (int, error)
}
