package models

import (
	"bytes"
	"sort"
	"strconv"

	json "github.com/goccy/go-json"
)

// HistoryEntry is one dated install count within a series.
type HistoryEntry struct {
	Date  string
	Count int
}

// HistorySeries is a per-integration, per-scope (total or a specific
// version) time series of install counts. Dates are strictly
// increasing and unique; the series only ever grows at the tail.
type HistorySeries struct {
	entries []HistoryEntry
	index   map[string]int
}

func NewHistorySeries() *HistorySeries {
	return &HistorySeries{index: make(map[string]int)}
}

func (hs *HistorySeries) Len() int {
	return len(hs.entries)
}

func (hs *HistorySeries) Last() (HistoryEntry, bool) {
	if len(hs.entries) == 0 {
		return HistoryEntry{}, false
	}
	return hs.entries[len(hs.entries)-1], true
}

func (hs *HistorySeries) Get(date string) (int, bool) {
	i, ok := hs.index[date]
	if !ok {
		return 0, false
	}
	return hs.entries[i].Count, true
}

// Entries returns a copy of the series in chronological order.
func (hs *HistorySeries) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(hs.entries))
	copy(out, hs.entries)
	return out
}

// Push appends an entry at the tail. Callers are responsible for
// keeping dates strictly ascending; the aggregator enforces that
// contract before pushing.
func (hs *HistorySeries) Push(date string, count int) {
	if hs.index == nil {
		hs.index = make(map[string]int)
	}
	hs.index[date] = len(hs.entries)
	hs.entries = append(hs.entries, HistoryEntry{Date: date, Count: count})
}

// MarshalJSON renders the series in the git-friendly on-disk form:
// one "date": count pair per line, dates ascending, so that daily
// commits of history files produce one-line diffs.
func (hs *HistorySeries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, e := range hs.entries {
		buf.WriteByte('"')
		buf.WriteString(e.Date)
		buf.WriteString(`": `)
		buf.WriteString(strconv.Itoa(e.Count))
		if i < len(hs.entries)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts any JSON object of date → count and rebuilds
// the series in chronological order. Files written by older tooling
// are not guaranteed to be sorted, so order is restored here rather
// than trusted.
func (hs *HistorySeries) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	dates := make([]string, 0, len(raw))
	for d := range raw {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	hs.entries = make([]HistoryEntry, 0, len(dates))
	hs.index = make(map[string]int, len(dates))
	for _, d := range dates {
		hs.Push(d, raw[d])
	}
	return nil
}

// IntegrationHistory bundles every series kept for one integration:
// the total series plus one series per version ever observed.
type IntegrationHistory struct {
	Total    *HistorySeries
	Versions map[string]*HistorySeries
}

func NewIntegrationHistory() *IntegrationHistory {
	return &IntegrationHistory{
		Total:    NewHistorySeries(),
		Versions: make(map[string]*HistorySeries),
	}
}

// Version returns the series for a version, creating it on first use.
func (ih *IntegrationHistory) Version(v string) *HistorySeries {
	s, ok := ih.Versions[v]
	if !ok {
		s = NewHistorySeries()
		ih.Versions[v] = s
	}
	return s
}
