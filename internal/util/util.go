package util

import "errors"

type causer interface {
	Cause() error
}

type unwrapper interface {
	Unwrap() error
}

type exitStatuser interface {
	ExitStatus() int
}

// next returns the error wrapped by e, following both pkg/errors
// causes and standard library wrapping.
func next(e error) error {
	switch v := e.(type) {
	case causer:
		return v.Cause()
	case unwrapper:
		return v.Unwrap()
	}
	return nil
}

// GetExitStatus walks the error chain looking for an error that
// knows which status the process should exit with. A nil error is a
// successful run. Any other error without an explicit status is
// treated as fatal.
func GetExitStatus(err error) (int, bool) {
	if err == nil {
		return 0, true
	}

	for e := err; e != nil; e = next(e) {
		if ese, ok := e.(exitStatuser); ok {
			return ese.ExitStatus(), true
		}
	}
	return 1, false
}

// IsExitStatusError reports whether err carries its own exit status,
// i.e. it is a normal termination rather than a failure.
func IsExitStatusError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := GetExitStatus(err)
	return ok
}

// ErrNoHome is returned by Homedir when no home directory is known.
var ErrNoHome = errors.New("environment variable HOME not set")
