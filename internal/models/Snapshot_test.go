package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2022-10-26"))
	assert.False(t, ValidDate("2022-13-01"))
	assert.False(t, ValidDate("26-10-2022"))
	assert.False(t, ValidDate("2022-10-26T00:00:00Z"))
	assert.False(t, ValidDate(""))
	assert.False(t, ValidDate("latest"))
}

func TestSnapshot_Empty(t *testing.T) {
	var nilSnap *Snapshot
	assert.True(t, nilSnap.Empty())

	assert.True(t, (&Snapshot{Date: "2022-10-26"}).Empty())

	snap := &Snapshot{
		Date: "2022-10-26",
		Integrations: map[string]*IntegrationRecord{
			"asusrouter": {Total: 1000},
		},
	}
	assert.False(t, snap.Empty())
}

func TestToday_IsValidDate(t *testing.T) {
	assert.True(t, ValidDate(Today()))
}
