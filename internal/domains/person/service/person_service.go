package service

import (
	"context"
	"fmt"

	"bookman-backend/internal/domains/person/model"
	"bookman-backend/internal/domains/person/repository"
	"bookman-backend/internal/shared/apperr"
)

type personService struct {
	factory *model.PersonFactory
	repo    repository.Repository
}

func NewPersonService(factory *model.PersonFactory, repo repository.Repository) Service {
	return &personService{factory: factory, repo: repo}
}

func (s *personService) Create(ctx context.Context, req model.CreatePersonRequest) (*model.Person, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrIllegalArgument, err)
	}

	person := s.factory.Create(model.FullName{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})

	if err := s.repo.Save(ctx, person); err != nil {
		return nil, err
	}

	return person, nil
}

func (s *personService) Get(ctx context.Context, id string) (*model.Person, error) {
	personID, err := model.ParsePersonID(id)
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, personID)
}

// Patch applies only the supplied fields; each applied field advances
// UpdatedDate.
func (s *personService) Patch(ctx context.Context, id string, req model.PatchPersonRequest) (*model.Person, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrIllegalArgument, err)
	}

	personID, err := model.ParsePersonID(id)
	if err != nil {
		return nil, err
	}

	person, err := s.repo.Get(ctx, personID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		if err := person.UpdateFirstName(*req.FirstName); err != nil {
			return nil, err
		}
	}
	if req.LastName != nil {
		if err := person.UpdateLastName(*req.LastName); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, person); err != nil {
		return nil, err
	}

	return person, nil
}

func (s *personService) Delete(ctx context.Context, id string) error {
	personID, err := model.ParsePersonID(id)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, personID)
}

func (s *personService) List(ctx context.Context, page int) (*PersonCollection, error) {
	persons, err := s.repo.GetPage(ctx, page)
	if err != nil {
		return nil, err
	}

	pageCount, err := s.repo.CountPage(ctx, page)
	if err != nil {
		return nil, err
	}

	return &PersonCollection{Persons: persons, PageCount: pageCount}, nil
}
