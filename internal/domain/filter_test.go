package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	records := mustRecords(t, "Berlin", "Aachen", "Zug")

	t.Run("empty query keeps everything in order", func(t *testing.T) {
		got := Filter(records, "")
		assert.Equal(t, records, got)
	})

	t.Run("case-insensitive substring", func(t *testing.T) {
		for _, q := range []string{"berl", "BERL", "Berl"} {
			got := Filter(records, q)
			assert.Equal(t, []string{"Berlin"}, cities(got), q)
		}
	})

	t.Run("matches any field", func(t *testing.T) {
		// every fixture shares country and postcode
		assert.Len(t, Filter(records, "germany"), 3)
		assert.Len(t, Filter(records, "7210"), 3)
		assert.Len(t, Filter(records, "state of zug"), 1)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, Filter(records, "reykjavik"))
	})

	t.Run("idempotent", func(t *testing.T) {
		for _, q := range []string{"", "a", "en", "zug", "nothing"} {
			once := Filter(records, q)
			assert.Equal(t, once, Filter(once, q), q)
		}
	})

	t.Run("does not modify input", func(t *testing.T) {
		before := cities(records)
		_ = Filter(records, "zug")
		assert.Equal(t, before, cities(records))
	})
}

func TestLocation_Matches(t *testing.T) {
	loc := Location{
		City:                StringValue("Zug"),
		Postcode:            NumberValue("6300"),
		TimezoneDescription: StringValue("Brussels, Copenhagen"),
	}

	assert.True(t, loc.Matches("zug"))
	assert.True(t, loc.Matches("630"))
	assert.True(t, loc.Matches("copenhagen"))
	assert.True(t, loc.Matches(""))
	assert.False(t, loc.Matches("Zug"), "query must already be lowercase")
}
