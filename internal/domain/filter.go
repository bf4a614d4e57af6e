package domain

import "strings"

// Filter returns the records whose location contains query in any field,
// ignoring case. An empty query keeps every record. Input order is preserved.
func Filter(records []UserRecord, query string) []UserRecord {
	q := strings.ToLower(query)
	out := make([]UserRecord, 0, len(records))
	for _, r := range records {
		if r.Location.Matches(q) {
			out = append(out, r)
		}
	}
	return out
}
