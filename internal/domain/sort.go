package domain

import (
	"encoding/json"
	"slices"

	"github.com/samber/mo"
)

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// SortConfig is the active sort key, if any, and its direction.
type SortConfig struct {
	Key       mo.Option[Field]
	Direction Direction
}

// InitialSortConfig is the unsorted state: no key, ascending.
func InitialSortConfig() SortConfig {
	return SortConfig{Key: mo.None[Field](), Direction: Ascending}
}

// NextSortConfig returns the config after selecting field. Selecting the
// active field while ascending flips to descending; anything else sorts
// ascending by field.
func NextSortConfig(current SortConfig, field Field) SortConfig {
	if key, ok := current.Key.Get(); ok && key == field && current.Direction == Ascending {
		return SortConfig{Key: mo.Some(field), Direction: Descending}
	}
	return SortConfig{Key: mo.Some(field), Direction: Ascending}
}

// Indicator returns the arrow shown next to field's header: ▲ or ▼ when
// field is the active key, empty otherwise.
func (c SortConfig) Indicator(field Field) string {
	key, ok := c.Key.Get()
	if !ok || key != field {
		return ""
	}
	if c.Direction == Descending {
		return "▼"
	}
	return "▲"
}

// MarshalJSON renders the config as {"key": <field or null>, "direction": ...}.
func (c SortConfig) MarshalJSON() ([]byte, error) {
	var key *Field
	if k, ok := c.Key.Get(); ok {
		key = &k
	}
	return json.Marshal(struct {
		Key       *Field    `json:"key"`
		Direction Direction `json:"direction"`
	}{key, c.Direction})
}

// Sort returns a new slice ordered by the config's key. Equal values keep
// their input order. With no key the input order is returned as a copy.
func Sort(records []UserRecord, cfg SortConfig) []UserRecord {
	out := slices.Clone(records)
	key, ok := cfg.Key.Get()
	if !ok {
		return out
	}
	slices.SortStableFunc(out, func(a, b UserRecord) int {
		c := Compare(a.Location.Get(key), b.Location.Get(key))
		if cfg.Direction == Descending {
			return -c
		}
		return c
	})
	return out
}
