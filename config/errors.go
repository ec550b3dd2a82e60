package config

import "fmt"

// The CLI's option errors fall into exactly the two kinds the original
// implementation's OptionException/UnrecognizedOptionException taxonomy
// describes (original_source/src/options/option_exception.h): a
// recognized key with a bad value, or a key nobody recognizes at all.
// Both wrap the underlying error via Unwrap so callers can match with
// errors.Is/As while still getting a human prefix, mirroring the
// original's s_errPrefix.
const errPrefix = "option error: "

// ErrMalformedOption reports a recognized configuration key whose value
// could not be parsed or is out of range. Err is the underlying parse
// error, if any; it may be nil when Reason alone describes the problem.
type ErrMalformedOption struct {
	Key    string
	Reason string
	Err    error
}

func (e *ErrMalformedOption) Error() string {
	return fmt.Sprintf("%s%s: %s", errPrefix, e.Key, e.Reason)
}

func (e *ErrMalformedOption) Unwrap() error { return e.Err }

// ErrUnknownOption reports a configuration key that is not recognized at
// all. Err is the underlying error that surfaced the unknown key, if any.
type ErrUnknownOption struct {
	Key string
	Err error
}

func (e *ErrUnknownOption) Error() string {
	return fmt.Sprintf("%sunrecognized option %q", errPrefix, e.Key)
}

func (e *ErrUnknownOption) Unwrap() error { return e.Err }
