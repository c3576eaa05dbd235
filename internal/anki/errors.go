package anki

import (
	"fmt"
	"time"
)

// ConnectionError indicates the AnkiConnect endpoint could not be reached.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("could not connect to Anki at %s. Please ensure:\n"+
		"1. Anki is currently running\n"+
		"2. The AnkiConnect add-on is installed (code: 2055492159)\n"+
		"3. Anki is configured to allow connections (default in AnkiConnect)",
		e.URL)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// TimeoutError indicates a call exceeded the configured per-call bound.
type TimeoutError struct {
	Action  string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("AnkiConnect timed out after %d seconds during %q",
		int(e.Timeout.Seconds()), e.Action)
}

// UpstreamError carries an error string reported by AnkiConnect itself.
type UpstreamError struct {
	Action  string
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("AnkiConnect returned an error for %q: %s", e.Action, e.Message)
}
