package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"bookman-backend/internal/shared/apperr"
	"bookman-backend/pkg/database"
)

type postgresSearchService struct {
	db database.Pool
}

func NewPostgresSearchService(db database.Pool) SearchService {
	return &postgresSearchService{db: db}
}

// matchedBooks is the DISTINCT match window: title or any author name
// contains the query, newest first. Both the count and the page selection
// run over this shape so their arithmetic agrees.
const matchedBooks = `
    SELECT DISTINCT b.id, b.updated_date
    FROM book b
    LEFT JOIN book_author ba ON ba.book_id = b.id
    LEFT JOIN person p ON p.id = ba.person_id
    WHERE b.title LIKE $1 OR p.first_name LIKE $1 OR p.last_name LIKE $1
    ORDER BY b.updated_date DESC
    LIMIT $2 OFFSET $3
`

func (s *postgresSearchService) SearchAll(ctx context.Context, query string, page int) (*BookResultSet, error) {
	if page < 0 {
		return nil, fmt.Errorf("%w: page should be positive or zero", apperr.ErrIllegalArgument)
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query should be non blank", apperr.ErrIllegalArgument)
	}

	pattern := "%" + query + "%"

	return database.WithTransactionResult(ctx, s.db, func(tx pgx.Tx) (*BookResultSet, error) {
		// Bounded count evaluated one page ahead: how many matches remain
		// beyond the requested page, capped at a full window.
		countQuery := `SELECT COUNT(*) FROM (` + matchedBooks + `) search_window`

		var itemCount int
		err := tx.QueryRow(ctx, countQuery, pattern, PageSize*MaxPageCount, PageSize*(page+1)).Scan(&itemCount)
		if err != nil {
			return nil, fmt.Errorf("failed to count book search results: %w", err)
		}
		pageCount := (itemCount + PageSize - 1) / PageSize

		idRows, err := tx.Query(ctx, matchedBooks, pattern, PageSize, PageSize*page)
		if err != nil {
			return nil, fmt.Errorf("failed to search books: %w", err)
		}

		var bookIDs []string
		var matchedID string
		var matchedUpdated time.Time
		_, err = pgx.ForEachRow(idRows, []any{&matchedID, &matchedUpdated}, func() error {
			bookIDs = append(bookIDs, matchedID)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to search books: %w", err)
		}

		if len(bookIDs) == 0 {
			return &BookResultSet{Results: []BookResult{}, PageCount: pageCount}, nil
		}

		const bookQuery = `
            SELECT id, title, created_date, updated_date
            FROM book
            WHERE id = ANY($1)
            ORDER BY updated_date DESC
        `

		bookRows, err := tx.Query(ctx, bookQuery, bookIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load searched books: %w", err)
		}

		results, err := pgx.CollectRows(bookRows, func(row pgx.CollectableRow) (BookResult, error) {
			var r BookResult
			err := row.Scan(&r.ID, &r.Title, &r.CreatedDate, &r.UpdatedDate)
			r.Authors = []BookResultAuthor{}
			return r, err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load searched books: %w", err)
		}

		// Full roster join: every author of each hit, not just the one that
		// matched.
		const authorQuery = `
            SELECT ba.book_id, p.id, p.first_name, p.last_name
            FROM book_author ba
            JOIN person p ON p.id = ba.person_id
            WHERE ba.book_id = ANY($1)
        `

		authorRows, err := tx.Query(ctx, authorQuery, bookIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load searched book authors: %w", err)
		}

		authorsByBook := map[string][]BookResultAuthor{}
		var bookID string
		var author BookResultAuthor
		_, err = pgx.ForEachRow(authorRows, []any{&bookID, &author.ID, &author.FirstName, &author.LastName}, func() error {
			authorsByBook[bookID] = append(authorsByBook[bookID], author)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load searched book authors: %w", err)
		}

		for i := range results {
			if authors, ok := authorsByBook[results[i].ID]; ok {
				results[i].Authors = authors
			}
		}

		return &BookResultSet{Results: results, PageCount: pageCount}, nil
	})
}
