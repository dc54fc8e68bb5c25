package dmenu

// abortError ends the menu without output. It is an expected outcome,
// not a failure, so cmd/dmenu does not log it.
type abortError struct {
	reason string
}

func (e abortError) Error() string {
	return e.reason
}

func (e abortError) ExitStatus() int {
	return 1
}

// makeAbort creates the error for a user or display initiated abort.
func makeAbort(reason string) error {
	return abortError{reason: reason}
}

// usageError is returned for an unparseable command line, after the
// usage text has been written.
type usageError struct {
	err error
}

func (e usageError) Error() string {
	return "invalid command line options: " + e.err.Error()
}

func (e usageError) Cause() error {
	return e.err
}

func (e usageError) ExitStatus() int {
	return 1
}
