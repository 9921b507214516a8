package geo

import (
	"fmt"
	"strings"
)

// Descriptor identifies a place a tourist is asking about. Every field is
// optional; the more that is filled in, the higher the confidence of the
// resulting assessment. Descriptors are request-scoped and never mutated
// after construction.
type Descriptor struct {
	State     string   `json:"state"`
	District  string   `json:"district,omitempty"`
	City      string   `json:"city,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (d Descriptor) HasCoordinates() bool {
	return d.Latitude != nil && d.Longitude != nil
}

// WeatherQuery builds the location string for the weather source. Coordinates
// are the most precise and win when present, then city, then bare state.
func (d Descriptor) WeatherQuery() string {
	if d.HasCoordinates() {
		return fmt.Sprintf("%.4f,%.4f", *d.Latitude, *d.Longitude)
	}
	if d.City != "" {
		if d.State != "" {
			return fmt.Sprintf("%s,%s", d.City, d.State)
		}
		return d.City
	}
	if d.State != "" {
		return d.State
	}
	return "Unknown"
}

// Key returns a canonical cache-friendly identity for the descriptor.
func (d Descriptor) Key() string {
	parts := []string{d.State, d.District, d.City}
	if d.HasCoordinates() {
		parts = append(parts, fmt.Sprintf("%.4f", *d.Latitude), fmt.Sprintf("%.4f", *d.Longitude))
	}
	return strings.Join(parts, ":")
}
