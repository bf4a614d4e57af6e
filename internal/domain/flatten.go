package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
)

// ErrMalformedLocation is returned when a user's location lacks a required member.
var ErrMalformedLocation = errors.New("malformed location")

type rawLocation struct {
	City        *Value          `json:"city"`
	Coordinates *rawCoordinates `json:"coordinates"`
	Country     *Value          `json:"country"`
	Postcode    *Value          `json:"postcode"`
	State       *Value          `json:"state"`
	Street      *rawStreet      `json:"street"`
	Timezone    *rawTimezone    `json:"timezone"`
}

type rawCoordinates struct {
	Latitude  *Value `json:"latitude"`
	Longitude *Value `json:"longitude"`
}

type rawStreet struct {
	Number *Value `json:"number"`
	Name   *Value `json:"name"`
}

type rawTimezone struct {
	Offset      *Value `json:"offset"`
	Description *Value `json:"description"`
}

// Flatten converts one raw user into a UserRecord. Every member other than
// location is copied unchanged.
func Flatten(raw RawUser) (UserRecord, error) {
	data, ok := raw[locationKey]
	if !ok || string(data) == "null" {
		return UserRecord{}, fmt.Errorf("%w: missing location", ErrMalformedLocation)
	}

	var src rawLocation
	if err := json.Unmarshal(data, &src); err != nil {
		return UserRecord{}, fmt.Errorf("%w: %w", ErrMalformedLocation, err)
	}

	loc, err := src.flatten()
	if err != nil {
		return UserRecord{}, err
	}

	fields := maps.Clone(raw)
	delete(fields, locationKey)
	return UserRecord{Fields: fields, Location: loc}, nil
}

// FlattenAll flattens every record, stopping at the first malformed one.
func FlattenAll(raws []RawUser) ([]UserRecord, error) {
	out := make([]UserRecord, 0, len(raws))
	for i, raw := range raws {
		rec, err := Flatten(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s rawLocation) flatten() (Location, error) {
	if s.Coordinates == nil {
		return Location{}, missing("location.coordinates")
	}
	if s.Street == nil {
		return Location{}, missing("location.street")
	}
	if s.Timezone == nil {
		return Location{}, missing("location.timezone")
	}

	leaves := []struct {
		path string
		v    *Value
	}{
		{"location.city", s.City},
		{"location.coordinates.latitude", s.Coordinates.Latitude},
		{"location.coordinates.longitude", s.Coordinates.Longitude},
		{"location.country", s.Country},
		{"location.postcode", s.Postcode},
		{"location.state", s.State},
		{"location.street.number", s.Street.Number},
		{"location.street.name", s.Street.Name},
		{"location.timezone.offset", s.Timezone.Offset},
		{"location.timezone.description", s.Timezone.Description},
	}
	for _, leaf := range leaves {
		if leaf.v == nil {
			return Location{}, missing(leaf.path)
		}
	}

	return Location{
		City:                *s.City,
		Latitude:            *s.Coordinates.Latitude,
		Longitude:           *s.Coordinates.Longitude,
		Country:             *s.Country,
		Postcode:            *s.Postcode,
		State:               *s.State,
		StreetNumber:        *s.Street.Number,
		StreetName:          *s.Street.Name,
		TimezoneOffset:      *s.Timezone.Offset,
		TimezoneDescription: *s.Timezone.Description,
	}, nil
}

func missing(path string) error {
	return fmt.Errorf("%w: missing %s", ErrMalformedLocation, path)
}
