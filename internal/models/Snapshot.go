package models

import (
	"time"
)

const DateLayout = "2006-01-02"

// IntegrationRecord is one integration's slice of a daily analytics
// snapshot: the total install count plus the per-version breakdown.
// The version counts need not sum to the total: installs that report
// no version only contribute to Total.
type IntegrationRecord struct {
	Total    int            `json:"total"`
	Versions map[string]int `json:"versions"`
}

// Snapshot is one day's raw analytics capture across all integrations.
// The date acts as the primary key; a snapshot is immutable once
// captured. On disk only the integration map is stored, the date is
// carried by the file name.
type Snapshot struct {
	Date         string
	Integrations map[string]*IntegrationRecord
}

func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Integrations) == 0
}

// ValidDate reports whether d is a well-formed YYYY-MM-DD date.
// Dates in this form compare chronologically as plain strings, which
// the store and aggregator rely on.
func ValidDate(d string) bool {
	_, err := time.Parse(DateLayout, d)
	return err == nil
}

// Today returns the current UTC date in YYYY-MM-DD form.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}
