package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistorySeries_PushAndLast(t *testing.T) {
	hs := NewHistorySeries()

	_, ok := hs.Last()
	assert.False(t, ok)

	hs.Push("2022-10-26", 1000)
	hs.Push("2022-10-27", 1050)

	assert.Equal(t, 2, hs.Len())
	last, ok := hs.Last()
	require.True(t, ok)
	assert.Equal(t, "2022-10-27", last.Date)
	assert.Equal(t, 1050, last.Count)
}

func TestHistorySeries_Get(t *testing.T) {
	hs := NewHistorySeries()
	hs.Push("2022-10-26", 1000)

	count, ok := hs.Get("2022-10-26")
	require.True(t, ok)
	assert.Equal(t, 1000, count)

	_, ok = hs.Get("2022-10-27")
	assert.False(t, ok)
}

func TestHistorySeries_EntriesReturnsCopy(t *testing.T) {
	hs := NewHistorySeries()
	hs.Push("2022-10-26", 1000)

	entries := hs.Entries()
	entries[0].Count = 999

	count, _ := hs.Get("2022-10-26")
	assert.Equal(t, 1000, count)
}

func TestHistorySeries_MarshalGitFriendly(t *testing.T) {
	hs := NewHistorySeries()
	hs.Push("2022-10-26", 1000)
	hs.Push("2022-10-27", 1050)

	data, err := hs.MarshalJSON()
	require.NoError(t, err)

	expected := "{\n\"2022-10-26\": 1000,\n\"2022-10-27\": 1050\n}"
	assert.Equal(t, expected, string(data))
}

func TestHistorySeries_MarshalEmpty(t *testing.T) {
	hs := NewHistorySeries()
	data, err := hs.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "{\n}", string(data))
}

func TestHistorySeries_UnmarshalRestoresOrder(t *testing.T) {
	// Keys deliberately out of order.
	raw := []byte(`{"2022-10-27": 1050, "2022-10-25": 900, "2022-10-26": 1000}`)

	hs := NewHistorySeries()
	require.NoError(t, hs.UnmarshalJSON(raw))

	entries := hs.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "2022-10-25", entries[0].Date)
	assert.Equal(t, "2022-10-26", entries[1].Date)
	assert.Equal(t, "2022-10-27", entries[2].Date)
	assert.Equal(t, 900, entries[0].Count)
}

func TestHistorySeries_Roundtrip(t *testing.T) {
	hs := NewHistorySeries()
	hs.Push("2022-10-26", 1000)
	hs.Push("2022-10-27", 1050)

	data, err := hs.MarshalJSON()
	require.NoError(t, err)

	restored := NewHistorySeries()
	require.NoError(t, restored.UnmarshalJSON(data))
	assert.Equal(t, hs.Entries(), restored.Entries())
}

func TestHistorySeries_UnmarshalInvalid(t *testing.T) {
	hs := NewHistorySeries()
	assert.Error(t, hs.UnmarshalJSON([]byte("not json")))
}

func TestHistorySeries_MarshalIsValidJSON(t *testing.T) {
	hs := NewHistorySeries()
	hs.Push("2022-10-26", 1000)

	data, err := hs.MarshalJSON()
	require.NoError(t, err)

	var parsed map[string]int
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, 1000, parsed["2022-10-26"])
}

func TestIntegrationHistory_VersionCreatesSeries(t *testing.T) {
	ih := NewIntegrationHistory()

	s := ih.Version("1.0.0")
	require.NotNil(t, s)
	s.Push("2022-10-26", 10)

	same := ih.Version("1.0.0")
	assert.Equal(t, 1, same.Len())
	assert.Len(t, ih.Versions, 1)
}
