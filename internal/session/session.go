package session

import "github.com/sornss/location/internal/location"

// LocationKey is the single fixed key the resolver caches the visitor's
// location under.
const LocationKey = "location"

// Session is per-visitor storage. The resolver performs at most one cold
// lookup per session lifetime; everything after that is served from here
// until the session expires or the key is forgotten.
type Session interface {
	Has(key string) (bool, error)
	Get(key string) (*location.Location, error)
	Set(key string, loc *location.Location) error
	Forget(key string) error
}
