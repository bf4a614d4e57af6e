package domain

import (
	"encoding/json"
	"maps"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// locationKey is the member of a raw user object that Flatten rewrites.
const locationKey = "location"

// RawUser is one element of the API's results array, kept as raw JSON per member.
type RawUser map[string]json.RawMessage

// Location is the flattened location of a user.
type Location struct {
	City                Value `json:"city"`
	Latitude            Value `json:"latitude"`
	Longitude           Value `json:"longitude"`
	Country             Value `json:"country"`
	Postcode            Value `json:"postcode"`
	State               Value `json:"state"`
	StreetNumber        Value `json:"street_number"`
	StreetName          Value `json:"street_name"`
	TimezoneOffset      Value `json:"timezone_offset"`
	TimezoneDescription Value `json:"timezone_description"`
}

// Get returns the value of a flat field. Unknown fields yield the zero Value.
func (l Location) Get(f Field) Value {
	switch f {
	case FieldCity:
		return l.City
	case FieldLatitude:
		return l.Latitude
	case FieldLongitude:
		return l.Longitude
	case FieldCountry:
		return l.Country
	case FieldPostcode:
		return l.Postcode
	case FieldState:
		return l.State
	case FieldStreetNumber:
		return l.StreetNumber
	case FieldStreetName:
		return l.StreetName
	case FieldTimezoneOffset:
		return l.TimezoneOffset
	case FieldTimezoneDescription:
		return l.TimezoneDescription
	}
	return Value{}
}

// Matches reports whether any field contains query. query must already be lowercase.
func (l Location) Matches(query string) bool {
	for _, f := range Fields {
		if strings.Contains(strings.ToLower(l.Get(f).String()), query) {
			return true
		}
	}
	return false
}

// UserRecord is a user with a flattened location. Fields holds every other
// member of the source object unchanged.
type UserRecord struct {
	Fields   map[string]json.RawMessage
	Location Location
}

// MarshalJSON renders the record as the source object with location replaced by its flat form.
func (r UserRecord) MarshalJSON() ([]byte, error) {
	loc, err := json.Marshal(r.Location)
	if err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage, len(r.Fields)+1)
	maps.Copy(out, r.Fields)
	out[locationKey] = loc
	return json.Marshal(out)
}

// Batch is the result of one load: the flattened records plus an id and fetch time.
type Batch struct {
	ID        string
	FetchedAt time.Time
	Records   []UserRecord
}

// NewBatch stamps records with a fresh batch id and the current time.
func NewBatch(records []UserRecord) Batch {
	return Batch{
		ID:        "batch_" + ulid.Make().String(),
		FetchedAt: clock.Now().UTC(),
		Records:   records,
	}
}
