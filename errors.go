package pagemask

import "errors"

// Document errors. Each is fatal for the file it occurs in only.
var (
	// ErrMalformedDocument is returned when a document is not well-formed XML
	// or has no Page element under any known PageXML namespace.
	ErrMalformedDocument = errors.New("pagemask: malformed document")

	// ErrMissingDimensions is returned when the Page element lacks
	// imageWidth or imageHeight.
	ErrMissingDimensions = errors.New("pagemask: missing page dimensions")

	// ErrInvalidDimensions is returned when imageWidth or imageHeight is not
	// a positive integer.
	ErrInvalidDimensions = errors.New("pagemask: invalid page dimensions")

	// ErrInvalidPoints is returned for a points attribute that is not a list
	// of "x,y" integer pairs.
	ErrInvalidPoints = errors.New("pagemask: invalid points")
)

// Caller errors.
var (
	// ErrInvalidScale is returned when a scale factor is not a positive
	// finite number or shrinks the page to nothing.
	ErrInvalidScale = errors.New("pagemask: invalid scale")
)

// FileError records the file a conversion error occurred in.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error { return e.Err }
