package domain

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// rawUserJSON builds a randomuser.me style user object for the given city and state.
func rawUserJSON(city, state string) string {
	return fmt.Sprintf(`{
		"gender": "female",
		"name": {"title": "Ms", "first": "Lena", "last": "Vogel"},
		"location": {
			"street": {"number": 4471, "name": "Lindenstraße"},
			"city": %q,
			"state": %q,
			"country": "Germany",
			"postcode": 72108,
			"coordinates": {"latitude": "52.5200", "longitude": "13.4050"},
			"timezone": {"offset": "+1:00", "description": "Brussels, Copenhagen, Madrid, Paris"}
		},
		"email": "lena.vogel@example.com",
		"nat": "DE"
	}`, city, state)
}

func mustRawUser(t *testing.T, data string) RawUser {
	t.Helper()
	var raw RawUser
	require.NoError(t, json.Unmarshal([]byte(data), &raw))
	return raw
}

func mustRecords(t *testing.T, cities ...string) []UserRecord {
	t.Helper()
	out := make([]UserRecord, 0, len(cities))
	for _, c := range cities {
		rec, err := Flatten(mustRawUser(t, rawUserJSON(c, "State of "+c)))
		require.NoError(t, err)
		out = append(out, rec)
	}
	return out
}

func cities(records []UserRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Location.City.String()
	}
	return out
}
