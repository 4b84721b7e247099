package ceph

import "errors"

var (
	// ErrExec means the snapshot could not be acquired: the ceph command was
	// missing, failed, or was denied.
	ErrExec = errors.New("ceph command failed")
	// ErrDecode means a snapshot document was malformed or did not match the
	// expected schema.
	ErrDecode = errors.New("decode snapshot")
	// ErrEncoding means a snapshot document was not valid UTF-8.
	ErrEncoding = errors.New("snapshot is not valid UTF-8")
)
