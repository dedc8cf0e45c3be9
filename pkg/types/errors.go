package types

import "errors"

// Configuration errors.
var (
	ErrInvalidTaxRate     = errors.New("tax rate must not be negative")
	ErrInvalidDelay       = errors.New("delete delay must be positive")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrInvalidProductName = errors.New("product name must not be empty")
	ErrLogFormatUnknown   = errors.New("unknown log format")
)

// Session command errors. Domain operations never fail; these describe input
// the session could not turn into an operation at all.
var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrInvalidArgument = errors.New("invalid argument")
)
