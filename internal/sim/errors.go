package sim

import "fmt"

// InputError reports malformed or out-of-range simulation parameters.
// Parameters are never clamped; a bad value fails the whole call.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

func inputErrorf(format string, args ...any) error {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}

// DataError reports a price series too short for a strategy's minimum
// window. A run that would produce zero usable rows fails with this instead
// of returning an empty-but-successful ledger.
type DataError struct {
	Msg string
}

func (e *DataError) Error() string { return e.Msg }

func dataErrorf(format string, args ...any) error {
	return &DataError{Msg: fmt.Sprintf(format, args...)}
}
