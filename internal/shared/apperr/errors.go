package apperr

import "errors"

// Cross-domain error kinds. Domain packages define their own sentinels for
// entity-specific failures (not found, duplicate); these cover the cases
// every layer shares.
var (
	// ErrIllegalArgument marks caller mistakes: malformed ids, negative
	// pages, blank search queries. Recoverable, reported in the response
	// envelope.
	ErrIllegalArgument = errors.New("illegal argument")

	// ErrIllegalSchema marks a storage invariant violation (an update or
	// delete touched more than one row for a primary key). Not recoverable;
	// surfaces as a server fault.
	ErrIllegalSchema = errors.New("illegal database schema")
)
