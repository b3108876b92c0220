package timezones

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata"
)

// ZoneState is the civil-time view of a zone at one instant.
type ZoneState struct {
	OffsetMinutes int
	DST           bool
}

// ZoneResolver answers the current UTC offset and daylight saving state of a
// timezone identifier.
type ZoneResolver interface {
	Resolve(id string, at time.Time) (ZoneState, error)
}

// LocationResolver resolves zones with the Go time package. The tz database is
// embedded, so results do not depend on the host's zoneinfo files.
type LocationResolver struct {
	mu        sync.Mutex
	locations map[string]*time.Location
}

// NewLocationResolver returns a resolver with an empty location cache.
func NewLocationResolver() *LocationResolver {
	return &LocationResolver{locations: make(map[string]*time.Location)}
}

// Resolve implements ZoneResolver.
func (r *LocationResolver) Resolve(id string, at time.Time) (ZoneState, error) {
	loc, err := r.location(id)
	if err != nil {
		return ZoneState{}, err
	}
	local := at.In(loc)
	_, offset := local.Zone()
	return ZoneState{OffsetMinutes: offset / 60, DST: local.IsDST()}, nil
}

func (r *LocationResolver) location(id string) (*time.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.locations == nil {
		r.locations = make(map[string]*time.Location)
	}
	if loc, ok := r.locations[id]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, fmt.Errorf("timezones: load location %q: %w", id, err)
	}
	r.locations[id] = loc
	return loc, nil
}
