package service

import (
	"context"
	"fmt"

	"bookman-backend/internal/domains/book/model"
	"bookman-backend/internal/domains/book/repository"
	personmodel "bookman-backend/internal/domains/person/model"
	personrepo "bookman-backend/internal/domains/person/repository"
	"bookman-backend/internal/shared/apperr"
)

type bookService struct {
	factory    *model.BookFactory
	repo       repository.Repository
	personRepo personrepo.Repository
}

func NewBookService(factory *model.BookFactory, repo repository.Repository, personRepo personrepo.Repository) Service {
	return &bookService{factory: factory, repo: repo, personRepo: personRepo}
}

// parseAuthorIDs validates and de-duplicates the submitted ids; listing a
// person twice yields one association, keeping first-occurrence order.
func parseAuthorIDs(ids []string) ([]model.BookAuthor, error) {
	authors := make([]model.BookAuthor, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, s := range ids {
		personID, err := personmodel.ParsePersonID(s)
		if err != nil {
			return nil, err
		}
		if seen[personID.String()] {
			continue
		}
		seen[personID.String()] = true
		authors = append(authors, model.BookAuthor{PersonID: personID})
	}
	return authors, nil
}

// resolveAuthors loads the person records and reorders them to the book's
// association order; the batch read makes no ordering promise.
func (s *bookService) resolveAuthors(ctx context.Context, book *model.Book) (*BookRecord, error) {
	persons, err := s.personRepo.GetAll(ctx, book.AuthorIDs())
	if err != nil {
		return nil, err
	}

	personByID := make(map[string]*personmodel.Person, len(persons))
	for _, p := range persons {
		personByID[p.ID.String()] = p
	}

	authors := make([]*personmodel.Person, 0, len(book.Authors))
	for _, id := range book.AuthorIDs() {
		if p, ok := personByID[id.String()]; ok {
			authors = append(authors, p)
		}
	}

	return &BookRecord{Book: book, Authors: authors}, nil
}

func (s *bookService) Create(ctx context.Context, req model.CreateBookRequest) (*BookRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrIllegalArgument, err)
	}

	book := s.factory.Create()

	if req.Title != nil {
		if err := book.UpdateTitle(*req.Title); err != nil {
			return nil, err
		}
	}

	if len(req.AuthorIDs) > 0 {
		authors, err := parseAuthorIDs(req.AuthorIDs)
		if err != nil {
			return nil, err
		}
		if err := book.UpdateAuthors(authors); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, book); err != nil {
		return nil, err
	}

	return s.resolveAuthors(ctx, book)
}

func (s *bookService) Get(ctx context.Context, id string) (*BookRecord, error) {
	bookID, err := model.ParseBookID(id)
	if err != nil {
		return nil, err
	}

	book, err := s.repo.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}

	return s.resolveAuthors(ctx, book)
}

// Patch applies only the supplied fields. A present AuthorIDs replaces the
// whole author set: empty removes every author, nil leaves it alone.
func (s *bookService) Patch(ctx context.Context, id string, req model.PatchBookRequest) (*BookRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrIllegalArgument, err)
	}

	bookID, err := model.ParseBookID(id)
	if err != nil {
		return nil, err
	}

	book, err := s.repo.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if err := book.UpdateTitle(*req.Title); err != nil {
			return nil, err
		}
	}

	if req.AuthorIDs != nil {
		authors, err := parseAuthorIDs(*req.AuthorIDs)
		if err != nil {
			return nil, err
		}
		if err := book.UpdateAuthors(authors); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}

	return s.resolveAuthors(ctx, book)
}

func (s *bookService) Delete(ctx context.Context, id string) error {
	bookID, err := model.ParseBookID(id)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, bookID)
}

// List resolves all author records for the page in a single batch call, then
// reassembles per-book author lists, so a page costs two book queries and
// one person query instead of one person query per book.
func (s *bookService) List(ctx context.Context, page int) (*BookCollection, error) {
	books, err := s.repo.GetPage(ctx, page)
	if err != nil {
		return nil, err
	}

	pageCount, err := s.repo.CountPage(ctx, page)
	if err != nil {
		return nil, err
	}

	var distinct []personmodel.PersonID
	seen := map[string]bool{}
	for _, book := range books {
		for _, id := range book.AuthorIDs() {
			if !seen[id.String()] {
				seen[id.String()] = true
				distinct = append(distinct, id)
			}
		}
	}

	persons, err := s.personRepo.GetAll(ctx, distinct)
	if err != nil {
		return nil, err
	}

	personByID := make(map[string]*personmodel.Person, len(persons))
	for _, p := range persons {
		personByID[p.ID.String()] = p
	}

	records := make([]BookRecord, len(books))
	for i, book := range books {
		authors := make([]*personmodel.Person, 0, len(book.Authors))
		for _, id := range book.AuthorIDs() {
			if p, ok := personByID[id.String()]; ok {
				authors = append(authors, p)
			}
		}
		records[i] = BookRecord{Book: book, Authors: authors}
	}

	return &BookCollection{Books: records, PageCount: pageCount}, nil
}
