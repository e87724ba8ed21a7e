package kvstore

import "errors"

var (
	ErrEmptyKey      = errors.New("empty key")
	ErrFailedRead    = errors.New("failed to read key")
	ErrFailedWrite   = errors.New("failed to write key")
	ErrFailedDelete  = errors.New("failed to delete key")
	ErrCorruptedFile = errors.New("store file is corrupted")
)
