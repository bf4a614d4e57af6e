// Package domain models the user location records served by the locations view.
//
// # Data Source
//
// Records come from the randomuser.me public API
// (https://randomuser.me/documentation). A single request such as
//
//	GET https://randomuser.me/api/?results=20
//
// returns {"results": [...], "info": {...}}. Every element of results is an
// arbitrary user object; only its "location" member is interpreted here.
// All other members are carried through verbatim as raw JSON.
//
// # Location Shape
//
// The API nests location data:
//
//	"location": {
//	  "street":      {"number": 8929, "name": "Valwood Pkwy"},
//	  "city":        "Billings",
//	  "state":       "Michigan",
//	  "country":     "United States",
//	  "postcode":    63104,
//	  "coordinates": {"latitude": "-69.8246", "longitude": "134.8719"},
//	  "timezone":    {"offset": "+9:30", "description": "Adelaide, Darwin"}
//	}
//
// [Flatten] promotes it to ten flat fields (see [Fields]). The API is loose
// about types: postcode is a number for some nationalities and a string for
// others, and coordinates are usually strings. [Value] keeps whichever kind
// arrived so that ordering and rendering match the source.
//
// # Ordering
//
// [Sort] is stable. Two strings compare lexically, two numbers numerically.
// A string and a number compare numerically when the string parses as a
// number; otherwise neither orders before the other.
//
// # Search
//
// [Filter] keeps a record when any of its ten location fields, lowercased,
// contains the lowercased query. There is no field-scoped syntax.
package domain
