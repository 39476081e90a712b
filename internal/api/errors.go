package api

import "errors"

var (
	ErrNoData            = errors.New("no option rows returned for this page")
	ErrMalformedResponse = errors.New("malformed JSONP response")
	ErrUnparsableName    = errors.New("cannot derive strike from contract name")
)
