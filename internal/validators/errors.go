package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidDocumentID = errors.New("invalid document id")
	ErrDocumentIDTooLong = errors.New("document id is too long")
	ErrEmptyDocument     = errors.New("document is required")
	ErrInvalidDocument   = errors.New("document is not valid JSON")
	ErrDocumentTooLarge  = errors.New("document is too large")
)
