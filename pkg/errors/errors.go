// Package errors holds the error classes every failing action falls into.
// Domain errors wrap one of them so handlers can map a whole class at once.
package errors

import "errors"

var (
	// ErrValidation missing or malformed input; the action performed no writes.
	ErrValidation = errors.New("validation failed")
	// ErrTransport non-2xx response or unreadable body from a remote endpoint.
	ErrTransport = errors.New("transport failure")
	// ErrRemote a 2xx response that carries an error marker.
	ErrRemote = errors.New("remote reported an error")
	// ErrImportShape an uploaded table lacks required headers or rows.
	ErrImportShape = errors.New("invalid import file")
)
