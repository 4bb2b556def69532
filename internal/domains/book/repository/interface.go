package repository

import (
	"context"

	"bookman-backend/internal/domains/book/model"
)

// Listing window constants. CountPage is a bounded remaining-page estimate,
// never a full-table count.
const (
	PageSize     = 25
	MaxPageCount = 10
)

// Repository persists books together with their author association rows.
// Save and Update rewrite the association set wholesale inside one
// transaction; a failed author insert rolls back the book row write.
type Repository interface {
	Get(ctx context.Context, id model.BookID) (*model.Book, error)
	Save(ctx context.Context, book *model.Book) error
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id model.BookID) error
	GetPage(ctx context.Context, page int) ([]*model.Book, error)
	CountPage(ctx context.Context, offsetPage int) (int, error)
}
