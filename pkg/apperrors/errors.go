package apperrors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUnknownProvider    = errors.New("unknown labeling provider")
	ErrUnknownStorageKind = errors.New("unknown storage kind")
	ErrMissingCredentials = errors.New("missing credentials")
	ErrMissingUsage       = errors.New("usage metadata missing from provider response")
)
