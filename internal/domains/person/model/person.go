package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookman-backend/internal/shared/apperr"
	"bookman-backend/internal/shared/clock"
)

// PersonID is the typed identifier of a person record. The canonical string
// form is the UUID text representation.
type PersonID struct {
	value uuid.UUID
}

// NewPersonID generates a fresh random id. Used only when creating a new
// person, never when reconstructing one from storage.
func NewPersonID() PersonID {
	return PersonID{value: uuid.New()}
}

// ParsePersonID validates an external string representation.
func ParsePersonID(s string) (PersonID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return PersonID{}, fmt.Errorf("%w: Illegal Person ID string", apperr.ErrIllegalArgument)
	}
	return PersonID{value: id}, nil
}

func (id PersonID) String() string { return id.value.String() }

// FullName is an immutable value object; replace it wholesale to change it.
type FullName struct {
	FirstName string
	LastName  string
}

// Person is a mutable aggregate. All mutation goes through the Update
// methods, which advance UpdatedDate via the injected clock and keep the
// UpdatedDate >= CreatedDate invariant.
type Person struct {
	ID          PersonID
	Name        FullName
	CreatedDate time.Time
	UpdatedDate time.Time

	clock clock.Clock
}

func (p *Person) UpdateFirstName(firstName string) error {
	p.Name = FullName{FirstName: firstName, LastName: p.Name.LastName}
	return p.setUpdatedDate(p.clock.Now())
}

func (p *Person) UpdateLastName(lastName string) error {
	p.Name = FullName{FirstName: p.Name.FirstName, LastName: lastName}
	return p.setUpdatedDate(p.clock.Now())
}

func (p *Person) UpdateName(name FullName) error {
	p.Name = name
	return p.setUpdatedDate(p.clock.Now())
}

// setUpdatedDate validates independently of the caller so a clock rewinding
// past CreatedDate cannot corrupt the aggregate.
func (p *Person) setUpdatedDate(t time.Time) error {
	if t.Before(p.CreatedDate) {
		return fmt.Errorf("%w: UpdatedDate should be after CreatedDate", ErrIllegalPersonState)
	}
	p.UpdatedDate = t
	return nil
}

// PersonFactory builds persons with the clock baked in.
type PersonFactory struct {
	clock clock.Clock
}

func NewPersonFactory(c clock.Clock) *PersonFactory {
	return &PersonFactory{clock: c}
}

// Create makes a fresh person: random id, CreatedDate = UpdatedDate = now.
func (f *PersonFactory) Create(name FullName) *Person {
	now := f.clock.Now()
	return &Person{
		ID:          NewPersonID(),
		Name:        name,
		CreatedDate: now,
		UpdatedDate: now,
		clock:       f.clock,
	}
}

// FromRepository reconstructs a person from stored state. The clock is not
// consulted, but the timestamp invariant is still enforced.
func (f *PersonFactory) FromRepository(id PersonID, name FullName, createdDate, updatedDate time.Time) (*Person, error) {
	p := &Person{
		ID:          id,
		Name:        name,
		CreatedDate: createdDate,
		clock:       f.clock,
	}
	if err := p.setUpdatedDate(updatedDate); err != nil {
		return nil, err
	}
	return p, nil
}
