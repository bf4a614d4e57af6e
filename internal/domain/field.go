package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned when a field name is not one of the ten flat location fields.
var ErrUnknownField = errors.New("unknown location field")

// Field names one of the flattened location fields.
type Field string

const (
	FieldCity                Field = "city"
	FieldLatitude            Field = "latitude"
	FieldLongitude           Field = "longitude"
	FieldCountry             Field = "country"
	FieldPostcode            Field = "postcode"
	FieldState               Field = "state"
	FieldStreetNumber        Field = "street_number"
	FieldStreetName          Field = "street_name"
	FieldTimezoneOffset      Field = "timezone_offset"
	FieldTimezoneDescription Field = "timezone_description"
)

// Fields lists every flat location field in canonical order. Search covers all of them.
var Fields = []Field{
	FieldCity,
	FieldLatitude,
	FieldLongitude,
	FieldCountry,
	FieldPostcode,
	FieldState,
	FieldStreetNumber,
	FieldStreetName,
	FieldTimezoneOffset,
	FieldTimezoneDescription,
}

// ParseField validates a field name.
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}
