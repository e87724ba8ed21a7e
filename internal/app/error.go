package app

import "errors"

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrLoadInProgress = errors.New("catalog load already started")
)
