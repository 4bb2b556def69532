package query

import (
	"context"
	"fmt"
	"strings"

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

func scanPersonResult(row pgx.CollectableRow) (PersonResult, error) {
	var r PersonResult
	err := row.Scan(&r.ID, &r.FirstName, &r.LastName, &r.CreatedDate, &r.UpdatedDate)
	return r, err
}

func (s *postgresSearchService) SearchAll(ctx context.Context, query string, page int) (*PersonResultSet, error) {
	if page < 0 {
		return nil, fmt.Errorf("%w: page should be positive or zero", apperr.ErrIllegalArgument)
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query should be non blank", apperr.ErrIllegalArgument)
	}

	pattern := "%" + query + "%"

	return database.WithTransactionResult(ctx, s.db, func(tx pgx.Tx) (*PersonResultSet, error) {
		// Bounded count evaluated one page ahead: how many matching rows
		// remain beyond the requested page, capped at a full window.
		const countQuery = `
            SELECT COUNT(*) FROM (
                SELECT id FROM person
                WHERE first_name LIKE $1 OR last_name LIKE $1
                ORDER BY updated_date DESC
                LIMIT $2 OFFSET $3
            ) search_window
        `

		var itemCount int
		err := tx.QueryRow(ctx, countQuery, pattern, PageSize*MaxPageCount, PageSize*(page+1)).Scan(&itemCount)
		if err != nil {
			return nil, fmt.Errorf("failed to count person search results: %w", err)
		}
		pageCount := (itemCount + PageSize - 1) / PageSize

		const searchQuery = `
            SELECT id, first_name, last_name, created_date, updated_date
            FROM person
            WHERE first_name LIKE $1 OR last_name LIKE $1
            ORDER BY updated_date DESC
            LIMIT $2 OFFSET $3
        `

		rows, err := tx.Query(ctx, searchQuery, pattern, PageSize, PageSize*page)
		if err != nil {
			return nil, fmt.Errorf("failed to search persons: %w", err)
		}

		results, err := pgx.CollectRows(rows, scanPersonResult)
		if err != nil {
			return nil, fmt.Errorf("failed to search persons: %w", err)
		}

		return &PersonResultSet{Results: results, PageCount: pageCount}, nil
	})
}
