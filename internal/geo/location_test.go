package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestDescriptor_HasCoordinates(t *testing.T) {
	assert.False(t, Descriptor{State: "Delhi"}.HasCoordinates())
	assert.False(t, Descriptor{Latitude: ptr(28.6)}.HasCoordinates())
	assert.True(t, Descriptor{Latitude: ptr(28.6), Longitude: ptr(77.2)}.HasCoordinates())
}

func TestDescriptor_WeatherQuery(t *testing.T) {
	cases := []struct {
		name string
		d    Descriptor
		want string
	}{
		{"coordinates win", Descriptor{State: "Delhi", City: "New Delhi", Latitude: ptr(28.6139), Longitude: ptr(77.209)}, "28.6139,77.2090"},
		{"city and state", Descriptor{State: "Maharashtra", City: "Mumbai"}, "Mumbai,Maharashtra"},
		{"city only", Descriptor{City: "Mumbai"}, "Mumbai"},
		{"state only", Descriptor{State: "Kerala"}, "Kerala"},
		{"empty", Descriptor{}, "Unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.d.WeatherQuery())
		})
	}
}

func TestResolver_DisabledPassesThrough(t *testing.T) {
	r := NewResolver("")
	assert.False(t, r.Enabled())

	d := Descriptor{State: "Delhi", City: "New Delhi"}
	got, err := r.Resolve(d)
	assert.NoError(t, err)
	assert.Equal(t, d, got)
}
