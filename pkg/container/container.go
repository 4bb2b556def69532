package container

import (
	"context"
	"fmt"

	"bookman-backend/internal/config"
	bookhandler "bookman-backend/internal/domains/book/handler"
	bookmodel "bookman-backend/internal/domains/book/model"
	bookquery "bookman-backend/internal/domains/book/query"
	bookrepo "bookman-backend/internal/domains/book/repository"
	bookservice "bookman-backend/internal/domains/book/service"
	personhandler "bookman-backend/internal/domains/person/handler"
	personmodel "bookman-backend/internal/domains/person/model"
	personquery "bookman-backend/internal/domains/person/query"
	personrepo "bookman-backend/internal/domains/person/repository"
	personservice "bookman-backend/internal/domains/person/service"
	"bookman-backend/internal/infrastructure/database"
	"bookman-backend/internal/shared/clock"
)

// Container is the root of the dependency graph. Initialization order is
// config, infrastructure, repositories, services, handlers; a failure at
// any step aborts startup.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB

	BookRepo   bookrepo.Repository
	PersonRepo personrepo.Repository

	BookSearch   bookquery.SearchService
	PersonSearch personquery.SearchService

	BookService   bookservice.Service
	PersonService personservice.Service

	BookHandler   *bookhandler.BookHandler
	PersonHandler *personhandler.PersonHandler
}

func NewContainer(ctx context.Context) (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	c.DB = database.NewPostgresDB(&cfg.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := c.DB.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	systemClock := clock.NewSystemClock()
	bookFactory := bookmodel.NewBookFactory(systemClock)
	personFactory := personmodel.NewPersonFactory(systemClock)

	c.BookRepo = bookrepo.NewPostgresRepository(c.DB.Pool, bookFactory)
	c.PersonRepo = personrepo.NewPostgresRepository(c.DB.Pool, personFactory)

	c.BookSearch = bookquery.NewPostgresSearchService(c.DB.Pool)
	c.PersonSearch = personquery.NewPostgresSearchService(c.DB.Pool)

	c.BookService = bookservice.NewBookService(bookFactory, c.BookRepo, c.PersonRepo)
	c.PersonService = personservice.NewPersonService(personFactory, c.PersonRepo)

	c.BookHandler = bookhandler.NewBookHandler(c.BookService, c.BookSearch)
	c.PersonHandler = personhandler.NewPersonHandler(c.PersonService, c.PersonSearch)

	return c, nil
}

func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
}
