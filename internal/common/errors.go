// Package common defines shared constants and sentinel errors used across
// the server and client layers of the SSR document platform. Callers should
// match these values with errors.Is.
package common

import "errors"

var (
	// Repository- and storage-level errors.
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("collaborator unavailable")

	// Access gate errors. Both are user-correctable and are surfaced
	// verbatim, never retried automatically.
	ErrUnauthorized       = errors.New("invalid user or PIN")
	ErrNoProjectsAssigned = errors.New("no projects assigned")

	// Load-time errors for tabular sources. Blank rows are dropped
	// silently; any other malformed row surfaces this error.
	ErrMalformedRow = errors.New("malformed row")

	// Service-level errors.
	ErrInternal  = errors.New("internal error")
	ErrForbidden = errors.New("project not authorized")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
