package validator

import "errors"

// Sentinel errors for the validation engine.
var (
	// ErrScript is returned when a Lua script rule fails to run.
	ErrScript = errors.New("script rule failed")

	// ErrUnknownFormat is returned when a rule names an unregistered format.
	ErrUnknownFormat = errors.New("unknown format")
)
