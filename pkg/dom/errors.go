package dom

import "errors"

var (
	// ErrIO signals the document source could not be read.
	ErrIO = errors.New("dom: io error")
	// ErrParse signals the document could not be built. Parse failures are
	// fatal to the caller since a malformed document cannot be queried.
	ErrParse = errors.New("dom: parse error")
	// ErrQuery signals a query could not run. Queries degrade to an empty
	// collection and callers keep going.
	ErrQuery = errors.New("dom: query error")
	// ErrMutation signals a document mutation could not be applied.
	ErrMutation = errors.New("dom: mutation failed")
	// ErrSerialize signals the document could not be written out as text.
	ErrSerialize = errors.New("dom: serialization failed")
	// ErrReleased is returned when a collection is released twice.
	ErrReleased = errors.New("dom: collection already released")
	// ErrClosed is returned by operations on a closed Utility.
	ErrClosed = errors.New("dom: document closed")
)
