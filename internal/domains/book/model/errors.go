package model

import "errors"

var (
	ErrBookNotFound     = errors.New("book not found")
	ErrDuplicateBook    = errors.New("duplicate book")
	ErrIllegalBookState = errors.New("illegal book state")
)
