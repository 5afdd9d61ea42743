// Package repository defines error types shared by the stores in this
// package. These sentinel values allow handlers to distinguish between
// failure scenarios; namespace failures arrive wrapped in
// namespace.ErrUnavailable instead.
package repository

import "errors"

// ErrClientNotFound is returned by ClientStore.Get when no record has the
// given id. Handlers translate it into an HTTP 404 response.
var ErrClientNotFound = errors.New("client not found")
