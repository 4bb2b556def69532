package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bookman-backend/internal/domains/person/model"
	"bookman-backend/internal/shared/apperr"
	"bookman-backend/pkg/database"
)

const uniqueViolation = "23505"

type postgresRepository struct {
	db      database.Pool
	factory *model.PersonFactory
}

func NewPostgresRepository(db database.Pool, factory *model.PersonFactory) Repository {
	return &postgresRepository{db: db, factory: factory}
}

func (r *postgresRepository) scanPerson(row pgx.CollectableRow) (*model.Person, error) {
	var (
		idStr               string
		firstName, lastName string
		created, updated    time.Time
	)
	if err := row.Scan(&idStr, &firstName, &lastName, &created, &updated); err != nil {
		return nil, err
	}

	id, err := model.ParsePersonID(idStr)
	if err != nil {
		return nil, fmt.Errorf("stored person id is corrupt: %w", err)
	}

	return r.factory.FromRepository(id, model.FullName{FirstName: firstName, LastName: lastName}, created, updated)
}

func (r *postgresRepository) Get(ctx context.Context, id model.PersonID) (*model.Person, error) {
	const query = `
        SELECT id, first_name, last_name, created_date, updated_date
        FROM person
        WHERE id = $1
    `

	rows, err := r.db.Query(ctx, query, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}

	person, err := pgx.CollectOneRow(rows, r.scanPerson)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %s", model.ErrPersonNotFound, id)
		}
		return nil, fmt.Errorf("failed to get person: %w", err)
	}

	return person, nil
}

func (r *postgresRepository) GetAll(ctx context.Context, ids []model.PersonID) ([]*model.Person, error) {
	if len(ids) == 0 {
		return []*model.Person{}, nil
	}

	const query = `
        SELECT id, first_name, last_name, created_date, updated_date
        FROM person
        WHERE id = ANY($1)
    `

	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = id.String()
	}

	rows, err := r.db.Query(ctx, query, idStrs)
	if err != nil {
		return nil, fmt.Errorf("failed to get persons: %w", err)
	}

	persons, err := pgx.CollectRows(rows, r.scanPerson)
	if err != nil {
		return nil, fmt.Errorf("failed to get persons: %w", err)
	}

	return persons, nil
}

func (r *postgresRepository) Save(ctx context.Context, person *model.Person) error {
	const query = `
        INSERT INTO person (id, first_name, last_name, created_date, updated_date)
        VALUES ($1, $2, $3, $4, $5)
    `

	_, err := r.db.Exec(ctx, query,
		person.ID.String(),
		person.Name.FirstName,
		person.Name.LastName,
		person.CreatedDate,
		person.UpdatedDate,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: id %s", model.ErrDuplicatePerson, person.ID)
		}
		return fmt.Errorf("failed to save person: %w", err)
	}

	return nil
}

func (r *postgresRepository) Update(ctx context.Context, person *model.Person) error {
	const query = `
        UPDATE person
        SET first_name = $1, last_name = $2, created_date = $3, updated_date = $4
        WHERE id = $5
    `

	tag, err := r.db.Exec(ctx, query,
		person.Name.FirstName,
		person.Name.LastName,
		person.CreatedDate,
		person.UpdatedDate,
		person.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}

	switch tag.RowsAffected() {
	case 0:
		return fmt.Errorf("%w: id %s", model.ErrPersonNotFound, person.ID)
	case 1:
		return nil
	default:
		return fmt.Errorf("%w: table person", apperr.ErrIllegalSchema)
	}
}

func (r *postgresRepository) Delete(ctx context.Context, id model.PersonID) error {
	const query = `DELETE FROM person WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}

	switch tag.RowsAffected() {
	case 0:
		return fmt.Errorf("%w: id %s", model.ErrPersonNotFound, id)
	case 1:
		return nil
	default:
		return fmt.Errorf("%w: table person", apperr.ErrIllegalSchema)
	}
}

func (r *postgresRepository) GetPage(ctx context.Context, page int) ([]*model.Person, error) {
	if page < 0 {
		return nil, fmt.Errorf("%w: page should be positive or zero", apperr.ErrIllegalArgument)
	}

	const query = `
        SELECT id, first_name, last_name, created_date, updated_date
        FROM person
        ORDER BY updated_date DESC
        LIMIT $1 OFFSET $2
    `

	rows, err := r.db.Query(ctx, query, PageSize, PageSize*page)
	if err != nil {
		return nil, fmt.Errorf("failed to get person page: %w", err)
	}

	persons, err := pgx.CollectRows(rows, r.scanPerson)
	if err != nil {
		return nil, fmt.Errorf("failed to get person page: %w", err)
	}

	return persons, nil
}

func (r *postgresRepository) CountPage(ctx context.Context, offsetPage int) (int, error) {
	if offsetPage < 0 {
		return 0, fmt.Errorf("%w: offsetPage should be positive or zero", apperr.ErrIllegalArgument)
	}

	// Bounded count: never scans past PageSize*MaxPageCount rows.
	const query = `
        SELECT COUNT(*) FROM (
            SELECT id FROM person
            ORDER BY updated_date DESC
            LIMIT $1 OFFSET $2
        ) page_window
    `

	var count int
	err := r.db.QueryRow(ctx, query, PageSize*MaxPageCount, PageSize*offsetPage).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count person pages: %w", err)
	}

	return count / PageSize, nil
}
