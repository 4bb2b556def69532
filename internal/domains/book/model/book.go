package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	personmodel "bookman-backend/internal/domains/person/model"
	"bookman-backend/internal/shared/apperr"
	"bookman-backend/internal/shared/clock"
)

// BookID is the typed identifier of a book record.
type BookID struct {
	value uuid.UUID
}

func NewBookID() BookID {
	return BookID{value: uuid.New()}
}

func ParseBookID(s string) (BookID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return BookID{}, fmt.Errorf("%w: Illegal Book ID string", apperr.ErrIllegalArgument)
	}
	return BookID{value: id}, nil
}

func (id BookID) String() string { return id.value.String() }

// BookAuthor is one row of the book-author association. It references the
// person by id only; person lifecycle is owned by the person repository.
type BookAuthor struct {
	PersonID personmodel.PersonID
}

// Book is a mutable aggregate owning its author association list. Mutation
// goes through the Update methods, which advance UpdatedDate via the
// injected clock and keep the UpdatedDate >= CreatedDate invariant.
type Book struct {
	ID          BookID
	Title       string
	Authors     []BookAuthor
	CreatedDate time.Time
	UpdatedDate time.Time

	clock clock.Clock
}

func (b *Book) UpdateTitle(title string) error {
	b.Title = title
	return b.setUpdatedDate(b.clock.Now())
}

// UpdateAuthors replaces the association list wholesale; persisting the book
// afterwards rewrites the association rows to match.
func (b *Book) UpdateAuthors(authors []BookAuthor) error {
	b.Authors = authors
	return b.setUpdatedDate(b.clock.Now())
}

// setUpdatedDate validates independently of the caller so a clock rewinding
// past CreatedDate cannot corrupt the aggregate.
func (b *Book) setUpdatedDate(t time.Time) error {
	if t.Before(b.CreatedDate) {
		return fmt.Errorf("%w: UpdatedDate should be after CreatedDate", ErrIllegalBookState)
	}
	b.UpdatedDate = t
	return nil
}

// AuthorIDs returns the person ids of the current association list.
func (b *Book) AuthorIDs() []personmodel.PersonID {
	ids := make([]personmodel.PersonID, len(b.Authors))
	for i, a := range b.Authors {
		ids[i] = a.PersonID
	}
	return ids
}

// BookFactory builds books with the clock baked in.
type BookFactory struct {
	clock clock.Clock
}

func NewBookFactory(c clock.Clock) *BookFactory {
	return &BookFactory{clock: c}
}

// Create makes a fresh book: random id, empty title, no authors,
// CreatedDate = UpdatedDate = now.
func (f *BookFactory) Create() *Book {
	now := f.clock.Now()
	return &Book{
		ID:          NewBookID(),
		CreatedDate: now,
		UpdatedDate: now,
		clock:       f.clock,
	}
}

// FromRepository reconstructs a book from stored state. The clock is not
// consulted, but the timestamp invariant is still enforced.
func (f *BookFactory) FromRepository(id BookID, title string, createdDate, updatedDate time.Time, authors []BookAuthor) (*Book, error) {
	b := &Book{
		ID:          id,
		Title:       title,
		Authors:     authors,
		CreatedDate: createdDate,
		clock:       f.clock,
	}
	if err := b.setUpdatedDate(updatedDate); err != nil {
		return nil, err
	}
	return b, nil
}
