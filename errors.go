package arbor

import "errors"

// Tree precondition errors. Operations wrap these with the names of the
// nodes involved; test for them with errors.Is.
var (
	ErrNilNode         = errors.New("nil node")
	ErrAlreadyParented = errors.New("node already has a parent")
	ErrCycle           = errors.New("attaching would create a cycle")
	ErrIndexOutOfRange = errors.New("child index out of range")
	ErrDisposed        = errors.New("node is disposed")
)

// Resource errors returned by Loader implementations.
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrResourceInvalid  = errors.New("resource invalid")
	ErrNoLoader         = errors.New("no loader configured")
)
