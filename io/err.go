package io

import (
	"errors"

	"github.com/ezrec/um/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelClosed = errors.New(f("channel closed"))

	// Program image errors
	ErrRomLoad = errors.New(f("program image unreadable"))
)

// ErrRom indicates the program image that failed to load.
type ErrRom struct {
	Path string
	Err  error
}

func (err *ErrRom) Error() string {
	return f("%v: %v: %v", err.Path, ErrRomLoad, err.Err)
}

func (err *ErrRom) Unwrap() []error {
	return []error{ErrRomLoad, err.Err}
}
