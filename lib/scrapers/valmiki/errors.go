package valmiki

import "fmt"

// FetchError is returned when the upstream site could not be reached or
// answered with a non-2xx status.
type FetchError struct {
	Kanda      int
	Sarga      int
	Lang       Language
	StatusCode int
	cause      error
}

func (e *FetchError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("fetch sarga %d.%d (%s): %s", e.Kanda, e.Sarga, e.Lang, e.cause)
	}
	return fmt.Sprintf("fetch sarga %d.%d (%s): status %d", e.Kanda, e.Sarga, e.Lang, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.cause
}

// ValidationError is returned when the canonical number of the first
// parsed verse does not belong to the requested kanda and sarga. it
// indicates upstream content drift or a request for a sarga that does
// not exist, so retrying is pointless.
type ValidationError struct {
	Kanda  int
	Sarga  int
	Number string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf(
		"unexpected sloka number %q for kanda %d sarga %d",
		e.Number, e.Kanda, e.Sarga,
	)
}
