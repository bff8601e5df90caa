package models

import "errors"

var (
	ErrSumsMismatch           = errors.New("checksum mismatch")
	ErrSizeMismatch           = errors.New("size mismatch")
	ErrUnsupportedPlatform    = errors.New("unsupported platform")
	ErrVersionNotFound        = errors.New("version not found")
	ErrMalformedCoordinate    = errors.New("malformed library coordinate")
	ErrMissingMainClass       = errors.New("descriptor has no main class")
	ErrMissingLegacyArguments = errors.New("parent descriptor has no legacy arguments")
	ErrMissingArguments       = errors.New("parent descriptor has no structured arguments")
	ErrUnknownUnpackMethod    = errors.New("unknown unpack method")
)
