package api

import "errors"

var (
	// ErrNotFound indicates the remote collection has no record with the
	// requested id. Distinguishable per the wire contract.
	ErrNotFound = errors.New("record not found")

	// ErrRemote indicates the remote collection rejected the call with a
	// non-success status other than 404.
	ErrRemote = errors.New("remote collection error")
)
