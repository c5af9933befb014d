package service

import "errors"

var (
	ErrInvalidDocumentID = errors.New("invalid document id")
	ErrInvalidDocument   = errors.New("invalid document")
	ErrDocumentNotFound  = errors.New("document not found")
)
