package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bookman-backend/internal/domains/book/model"
	personmodel "bookman-backend/internal/domains/person/model"
	"bookman-backend/internal/shared/apperr"
	"bookman-backend/pkg/database"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type postgresRepository struct {
	db      database.Pool
	factory *model.BookFactory
}

func NewPostgresRepository(db database.Pool, factory *model.BookFactory) Repository {
	return &postgresRepository{db: db, factory: factory}
}

// bookRow is the flat table shape before ids are parsed and the entity is
// rebuilt through the factory.
type bookRow struct {
	id      string
	title   string
	created time.Time
	updated time.Time
}

func scanBookRow(row pgx.CollectableRow) (bookRow, error) {
	var b bookRow
	err := row.Scan(&b.id, &b.title, &b.created, &b.updated)
	return b, err
}

func (r *postgresRepository) buildBook(row bookRow, authorIDs []string) (*model.Book, error) {
	id, err := model.ParseBookID(row.id)
	if err != nil {
		return nil, fmt.Errorf("stored book id is corrupt: %w", err)
	}

	authors := make([]model.BookAuthor, len(authorIDs))
	for i, s := range authorIDs {
		personID, err := personmodel.ParsePersonID(s)
		if err != nil {
			return nil, fmt.Errorf("stored author id is corrupt: %w", err)
		}
		authors[i] = model.BookAuthor{PersonID: personID}
	}

	return r.factory.FromRepository(id, row.title, row.created, row.updated, authors)
}

// replaceAuthors syncs the association rows to the book's current author
// list: delete everything for the book id, then insert the new set. A
// foreign key violation on person_id means an author id has no person row;
// a primary key violation means the same author was listed twice.
func (r *postgresRepository) replaceAuthors(ctx context.Context, tx pgx.Tx, book *model.Book) error {
	const deleteQuery = `DELETE FROM book_author WHERE book_id = $1`

	if _, err := tx.Exec(ctx, deleteQuery, book.ID.String()); err != nil {
		return fmt.Errorf("failed to clear book authors: %w", err)
	}

	const insertQuery = `INSERT INTO book_author (book_id, person_id) VALUES ($1, $2)`

	for _, author := range book.Authors {
		if _, err := tx.Exec(ctx, insertQuery, book.ID.String(), author.PersonID.String()); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				switch pgErr.Code {
				case foreignKeyViolation:
					return &personmodel.NoPersonError{IDs: []personmodel.PersonID{author.PersonID}}
				case uniqueViolation:
					return fmt.Errorf("%w: author %s listed more than once", apperr.ErrIllegalArgument, author.PersonID)
				}
			}
			return fmt.Errorf("failed to insert book author: %w", err)
		}
	}

	return nil
}

func (r *postgresRepository) Get(ctx context.Context, id model.BookID) (*model.Book, error) {
	return database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (*model.Book, error) {
		const bookQuery = `
            SELECT id, title, created_date, updated_date
            FROM book
            WHERE id = $1
        `

		rows, err := tx.Query(ctx, bookQuery, id.String())
		if err != nil {
			return nil, fmt.Errorf("failed to get book: %w", err)
		}

		row, err := pgx.CollectOneRow(rows, scanBookRow)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: id %s", model.ErrBookNotFound, id)
			}
			return nil, fmt.Errorf("failed to get book: %w", err)
		}

		const authorQuery = `SELECT person_id FROM book_author WHERE book_id = $1`

		authorRows, err := tx.Query(ctx, authorQuery, id.String())
		if err != nil {
			return nil, fmt.Errorf("failed to get book authors: %w", err)
		}

		authorIDs, err := pgx.CollectRows(authorRows, pgx.RowTo[string])
		if err != nil {
			return nil, fmt.Errorf("failed to get book authors: %w", err)
		}

		return r.buildBook(row, authorIDs)
	})
}

func (r *postgresRepository) Save(ctx context.Context, book *model.Book) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		const query = `
            INSERT INTO book (id, title, created_date, updated_date)
            VALUES ($1, $2, $3, $4)
        `

		_, err := tx.Exec(ctx, query,
			book.ID.String(),
			book.Title,
			book.CreatedDate,
			book.UpdatedDate,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return fmt.Errorf("%w: id %s", model.ErrDuplicateBook, book.ID)
			}
			return fmt.Errorf("failed to save book: %w", err)
		}

		return r.replaceAuthors(ctx, tx, book)
	})
}

func (r *postgresRepository) Update(ctx context.Context, book *model.Book) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		const query = `
            UPDATE book
            SET title = $1, created_date = $2, updated_date = $3
            WHERE id = $4
        `

		tag, err := tx.Exec(ctx, query,
			book.Title,
			book.CreatedDate,
			book.UpdatedDate,
			book.ID.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to update book: %w", err)
		}

		switch tag.RowsAffected() {
		case 0:
			return fmt.Errorf("%w: id %s", model.ErrBookNotFound, book.ID)
		case 1:
		default:
			return fmt.Errorf("%w: table book", apperr.ErrIllegalSchema)
		}

		return r.replaceAuthors(ctx, tx, book)
	})
}

func (r *postgresRepository) Delete(ctx context.Context, id model.BookID) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		const deleteAuthors = `DELETE FROM book_author WHERE book_id = $1`

		if _, err := tx.Exec(ctx, deleteAuthors, id.String()); err != nil {
			return fmt.Errorf("failed to delete book authors: %w", err)
		}

		const deleteBook = `DELETE FROM book WHERE id = $1`

		tag, err := tx.Exec(ctx, deleteBook, id.String())
		if err != nil {
			return fmt.Errorf("failed to delete book: %w", err)
		}

		switch tag.RowsAffected() {
		case 0:
			return fmt.Errorf("%w: id %s", model.ErrBookNotFound, id)
		case 1:
			return nil
		default:
			return fmt.Errorf("%w: table book", apperr.ErrIllegalSchema)
		}
	})
}

func (r *postgresRepository) GetPage(ctx context.Context, page int) ([]*model.Book, error) {
	if page < 0 {
		return nil, fmt.Errorf("%w: page should be positive or zero", apperr.ErrIllegalArgument)
	}

	return database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) ([]*model.Book, error) {
		const bookQuery = `
            SELECT id, title, created_date, updated_date
            FROM book
            ORDER BY updated_date DESC
            LIMIT $1 OFFSET $2
        `

		rows, err := tx.Query(ctx, bookQuery, PageSize, PageSize*page)
		if err != nil {
			return nil, fmt.Errorf("failed to get book page: %w", err)
		}

		bookRows, err := pgx.CollectRows(rows, scanBookRow)
		if err != nil {
			return nil, fmt.Errorf("failed to get book page: %w", err)
		}

		if len(bookRows) == 0 {
			return []*model.Book{}, nil
		}

		bookIDs := make([]string, len(bookRows))
		for i, row := range bookRows {
			bookIDs[i] = row.id
		}

		const authorQuery = `
            SELECT book_id, person_id FROM book_author WHERE book_id = ANY($1)
        `

		authorRows, err := tx.Query(ctx, authorQuery, bookIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to get book page authors: %w", err)
		}

		authorsByBook := map[string][]string{}
		var bookID, personID string
		_, err = pgx.ForEachRow(authorRows, []any{&bookID, &personID}, func() error {
			authorsByBook[bookID] = append(authorsByBook[bookID], personID)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get book page authors: %w", err)
		}

		books := make([]*model.Book, len(bookRows))
		for i, row := range bookRows {
			book, err := r.buildBook(row, authorsByBook[row.id])
			if err != nil {
				return nil, err
			}
			books[i] = book
		}

		return books, nil
	})
}

func (r *postgresRepository) CountPage(ctx context.Context, offsetPage int) (int, error) {
	if offsetPage < 0 {
		return 0, fmt.Errorf("%w: offsetPage should be positive or zero", apperr.ErrIllegalArgument)
	}

	// Bounded count: never scans past PageSize*MaxPageCount rows.
	const query = `
        SELECT COUNT(*) FROM (
            SELECT id FROM book
            ORDER BY updated_date DESC
            LIMIT $1 OFFSET $2
        ) page_window
    `

	var count int
	err := r.db.QueryRow(ctx, query, PageSize*MaxPageCount, PageSize*offsetPage).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count book pages: %w", err)
	}

	return count / PageSize, nil
}
