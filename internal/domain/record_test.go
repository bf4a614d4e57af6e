package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBatch(t *testing.T) {
	fixed := time.Date(2026, time.March, 3, 9, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	records := mustRecords(t, "Berlin")
	batch := NewBatch(records)

	assert.Equal(t, fixed, batch.FetchedAt)
	assert.Equal(t, records, batch.Records)
	require.True(t, strings.HasPrefix(batch.ID, "batch_"))
	_, err := ulid.Parse(strings.TrimPrefix(batch.ID, "batch_"))
	assert.NoError(t, err)

	assert.NotEqual(t, batch.ID, NewBatch(nil).ID)
}

func TestLocation_Get(t *testing.T) {
	rec := mustRecords(t, "Zug")[0]

	for _, f := range Fields {
		assert.NotEmpty(t, rec.Location.Get(f).String(), f)
	}
	assert.Empty(t, rec.Location.Get(Field("email")).String())
}
