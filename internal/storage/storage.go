// Package storage holds what the remote object store backends share.
package storage

import "errors"

// ErrObjectNotFound is returned when no stored object matches the requested name or id
var ErrObjectNotFound = errors.New("object not found")

// ObjectInfo identifies a stored object and its size in bytes
type ObjectInfo struct {
	ID   string
	Size int64
}
