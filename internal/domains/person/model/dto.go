package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const maxNameLength = 255

type CreatePersonRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (r CreatePersonRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Length(0, maxNameLength)),
		validation.Field(&r.LastName, validation.Length(0, maxNameLength)),
	)
}

// PatchPersonRequest fields use pointers to distinguish "absent" from
// "set to empty": only supplied fields change.
type PatchPersonRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

func (r PatchPersonRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Length(0, maxNameLength)),
		validation.Field(&r.LastName, validation.Length(0, maxNameLength)),
	)
}

type PersonResponse struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	CreatedDate time.Time `json:"createdDate"`
	UpdatedDate time.Time `json:"updatedDate"`
}

type PersonCollectionResponse struct {
	Persons   []PersonResponse `json:"persons"`
	PageCount int              `json:"pageCount"`
}

func (p *Person) ToResponse() PersonResponse {
	return PersonResponse{
		ID:          p.ID.String(),
		FirstName:   p.Name.FirstName,
		LastName:    p.Name.LastName,
		CreatedDate: p.CreatedDate,
		UpdatedDate: p.UpdatedDate,
	}
}
