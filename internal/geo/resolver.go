package geo

import (
	"fmt"

	"github.com/kelvins/geocoder"
)

// Resolver fills in coordinates for descriptors that carry only names,
// using the Google geocoding API. Construction requires an API key; a
// missing key disables resolution entirely (callers get the descriptor
// back unchanged).
type Resolver struct {
	enabled bool
}

// NewResolver configures the geocoder with the supplied API key.
// An empty key returns a disabled resolver.
func NewResolver(apiKey string) *Resolver {
	if apiKey == "" {
		return &Resolver{}
	}
	geocoder.ApiKey = apiKey
	return &Resolver{enabled: true}
}

// Enabled reports whether the resolver can perform lookups.
func (r *Resolver) Enabled() bool {
	return r.enabled
}

// Resolve returns a copy of d with coordinates filled in when they are
// missing and the descriptor names a resolvable place. Lookup failures are
// reported but never fatal; the caller proceeds with the original descriptor.
func (r *Resolver) Resolve(d Descriptor) (Descriptor, error) {
	if !r.enabled || d.HasCoordinates() {
		return d, nil
	}
	if d.City == "" && d.State == "" {
		return d, nil
	}

	addr := geocoder.Address{
		District: d.District,
		City:     d.City,
		State:    d.State,
		Country:  "India",
	}

	loc, err := geocoder.Geocoding(addr)
	if err != nil {
		return d, fmt.Errorf("geocode %q: %w", d.Key(), err)
	}

	lat, lon := loc.Latitude, loc.Longitude
	d.Latitude = &lat
	d.Longitude = &lon
	return d, nil
}
