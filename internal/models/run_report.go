package models

import (
	"fmt"
	"sort"
)

// RunFailure records one integration whose artifacts could not be
// fully updated during a run.
type RunFailure struct {
	Integration string
	Err         error
}

// RunReport accounts for one pipeline invocation: which integrations
// were updated, which were skipped as benign (absent from the day's
// snapshot), and which failed. The caller turns a non-empty failure
// list into a non-zero completion status.
type RunReport struct {
	Date     string
	Updated  []string
	Skipped  []string
	Failures []RunFailure
}

func NewRunReport(date string) *RunReport {
	return &RunReport{Date: date}
}

func (r *RunReport) AddUpdated(integration string) {
	r.Updated = append(r.Updated, integration)
}

func (r *RunReport) AddSkipped(integration string) {
	r.Skipped = append(r.Skipped, integration)
}

func (r *RunReport) AddFailure(integration string, err error) {
	r.Failures = append(r.Failures, RunFailure{Integration: integration, Err: err})
}

// Err collapses the failure list into a single error, nil when the
// run was clean.
func (r *RunReport) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		names = append(names, f.Integration)
	}
	sort.Strings(names)
	return fmt.Errorf("run %s: %d of %d integrations failed: %v",
		r.Date, len(r.Failures), len(r.Failures)+len(r.Updated), names)
}
