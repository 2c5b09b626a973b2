package models

import "fmt"

// IndexWriteError records one source (a verse id or an asset file) that
// failed during an index run.
type IndexWriteError struct {
	Source string
	Err    error
}

func (e *IndexWriteError) Error() string {
	return fmt.Sprintf("index %s: %v", e.Source, e.Err)
}

func (e *IndexWriteError) Unwrap() error { return e.Err }

// IndexReport summarizes an index run. Added counts records written to
// the store; Skipped counts records attempted but not written. Errors
// carries the detail for every skipped record and every rejected asset
// file.
type IndexReport struct {
	Added   int               `json:"added"`
	Skipped int               `json:"skipped"`
	Errors  []IndexWriteError `json:"errors,omitempty"`
}
