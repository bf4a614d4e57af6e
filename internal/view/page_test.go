package view_test

import (
	"encoding/json"
	"testing"

	"github.com/couchcryptid/user-locations/internal/domain"
	"github.com/couchcryptid/user-locations/internal/view"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive_Headers(t *testing.T) {
	p := view.Derive(view.InitialState())

	require.Len(t, p.Headers, view.ColumnCount)
	labels := make([]string, len(p.Headers))
	for i, h := range p.Headers {
		labels[i] = h.Label
	}
	assert.Equal(t, []string{
		"City", "State", "Country", "Postcode", "Street",
		"Latitude", "Longitude", "Timezone Offset", "Timezone Description",
	}, labels)

	assert.True(t, p.Headers[0].Sortable)
	assert.Equal(t, domain.FieldCity, p.Headers[0].Field)
	assert.True(t, p.Headers[1].Sortable)
	assert.Equal(t, domain.FieldState, p.Headers[1].Field)
	for _, h := range p.Headers[2:] {
		assert.False(t, h.Sortable, h.Label)
		assert.Empty(t, h.Field, h.Label)
	}
}

func TestDerive_IndicatorOnlyOnActiveKey(t *testing.T) {
	st := view.InitialState()
	st.Sort = domain.SortConfig{Key: mo.Some(domain.FieldState), Direction: domain.Descending}

	p := view.Derive(st)
	assert.Empty(t, p.Headers[0].Indicator)
	assert.Equal(t, "▼", p.Headers[1].Indicator)
}

func TestDerive_RowCells(t *testing.T) {
	st := view.InitialState()
	st.Records = []domain.UserRecord{record("Berlin", "Berlin")}

	p := view.Derive(st)
	require.Len(t, p.Rows, 1)
	assert.Equal(t, []string{
		"Berlin", "Berlin", "Germany", "10115", "2215 Kastanienweg",
		"47.1662", "8.5155", "+1:00", "Brussels, Copenhagen, Madrid, Paris",
	}, p.Rows[0].Cells())
}

func TestPage_JSON(t *testing.T) {
	st := view.InitialState()
	st.Records = []domain.UserRecord{record("Zug", "Zug")}

	data, err := json.Marshal(view.Derive(st))
	require.NoError(t, err)

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &out))
	assert.JSONEq(t, `{"key":null,"direction":"ascending"}`, string(out["sort"]))
	assert.JSONEq(t, `""`, string(out["query"]))
	assert.JSONEq(t, `1`, string(out["total"]))
	assert.NotContains(t, out, "fetched_at")
	assert.NotContains(t, out, "batch_id")
}
