package dock

import "errors"

var (
	// ErrInvalidArgument reports a caller mistake: an empty or duplicate id,
	// an unknown panel, an out-of-range index, an invalid slot or a request
	// the panel does not permit.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRuntime reports a condition the caller could not have checked up
	// front, such as a full registry or a failing panel Init.
	ErrRuntime = errors.New("runtime error")
)
