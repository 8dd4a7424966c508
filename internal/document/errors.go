package document

import "errors"

var (
	// ErrUnsupportedFile is returned when a file is neither markdown nor plain text.
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrNoFile is returned when a drop or selection carries no file.
	ErrNoFile = errors.New("no file")
)
