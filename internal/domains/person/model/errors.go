package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPersonNotFound     = errors.New("person not found")
	ErrDuplicatePerson    = errors.New("duplicate person")
	ErrIllegalPersonState = errors.New("illegal person state")
)

// NoPersonError reports author references that do not resolve to person
// rows. Raised when the book_author foreign key on person_id is violated.
type NoPersonError struct {
	IDs []PersonID
}

func (e *NoPersonError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("no person found for id(s): %s", strings.Join(ids, ", "))
}
