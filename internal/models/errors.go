package models

import (
	"errors"
	"fmt"
)

// ErrMissingSnapshotData marks an integration that was expected (it
// has history on disk) but is absent from the day's snapshot. Benign:
// the integration's artifacts are left untouched for that day.
var ErrMissingSnapshotData = errors.New("integration missing from snapshot")

// OutOfOrderSnapshotError is returned when a snapshot's date is not
// after the last recorded date of a series. The series is left
// unchanged.
type OutOfOrderSnapshotError struct {
	Date string
	Last string
}

func (e *OutOfOrderSnapshotError) Error() string {
	return fmt.Sprintf("out of order snapshot: date %s is before recorded %s", e.Date, e.Last)
}

// WriteFailureError wraps an I/O error persisting a single artifact.
// Fatal for that artifact only; the run continues with the rest.
type WriteFailureError struct {
	Path string
	Err  error
}

func (e *WriteFailureError) Error() string {
	return fmt.Sprintf("write failure for %s: %s", e.Path, e.Err)
}

func (e *WriteFailureError) Unwrap() error {
	return e.Err
}
