package textbuf

import "errors"

// Errors returned by checked accessors and Validate.
var (
	// ErrIndexOutOfRange indicates an index outside [0, Len()).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNilStorage indicates a buffer with content but no storage.
	ErrNilStorage = errors.New("buffer storage is nil")

	// ErrMissingTerminator indicates the byte at Len() is not zero.
	ErrMissingTerminator = errors.New("buffer is not zero terminated")

	// ErrLengthMismatch indicates the storage size is not Len()+1.
	ErrLengthMismatch = errors.New("buffer storage does not match length")
)
