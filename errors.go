package stego

import (
	"errors"
	"fmt"
)

var (
	ErrDimensionMismatch   = errors.New("carrier and secret dimensions differ")
	ErrInvalidChannelCount = errors.New("pixel grid must have exactly 3 channels")
	ErrInvalidShape        = errors.New("pixel grid must have positive width and height")
	ErrInvalidOption       = errors.New("invalid option")
)

// DimensionMismatchError reports the shapes of a carrier and secret that
// cannot be encoded together. It matches ErrDimensionMismatch with errors.Is.
type DimensionMismatchError struct {
	Carrier, Secret Shape
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: carrier %s, secret %s", ErrDimensionMismatch, e.Carrier, e.Secret)
}

func (e *DimensionMismatchError) Unwrap() error {
	return ErrDimensionMismatch
}
