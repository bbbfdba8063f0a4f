package internalerr

import "github.com/pkg/errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidPattern   = errors.New("invalid pattern")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrTiling           = errors.New("tokens do not tile chunk")
)
