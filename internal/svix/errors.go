package svix

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInsufficientData = errors.New("insufficient data")
	ErrInconsistentSpot = errors.New("inconsistent underlying price")
)
