package core

import (
	"errors"
)

var (
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrInvalidLogLevel = errors.New("invalid log level, expected one of debug, info, warn, error")
	ErrNotInitialized  = errors.New("engine not initialized")
)
