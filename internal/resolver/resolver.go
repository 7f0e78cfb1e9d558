// Package resolver orchestrates visitor geolocation: session cache lookup,
// client IP determination, primary driver invocation and the ordered
// fallback chain.
package resolver

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/sornss/location/internal/common"
	"github.com/sornss/location/internal/drivers"
	"github.com/sornss/location/internal/location"
	"github.com/sornss/location/internal/session"
)

type Resolver struct {
	cfg     *common.Config
	factory *drivers.Factory
	ip      *IPResolver
	session session.Session
	logger  zerolog.Logger

	lookups   *atomic.Int64
	fallbacks *atomic.Int64
	exhausted *atomic.Int64
}

func New(
	cfg *common.Config,
	factory *drivers.Factory,
	sess session.Session,
	logger zerolog.Logger,
) *Resolver {
	return &Resolver{
		cfg:       cfg,
		factory:   factory,
		ip:        NewIPResolver(cfg),
		session:   sess,
		logger:    logger,
		lookups:   atomic.NewInt64(0),
		fallbacks: atomic.NewInt64(0),
		exhausted: atomic.NewInt64(0),
	}
}

// Get resolves the visitor's location. A session-cached record is returned
// as-is, even when ip differs from the address it was resolved for: once
// cached, a session never re-queries a driver. Callers needing a per-call
// IP override must not rely on session caching.
func (r *Resolver) Get(
	ctx context.Context,
	env Environ,
	ip string,
) (*location.Location, error) {
	// stale cached data must never survive while iterating on a local setup
	if r.cfg.LocalTesting.Enabled && r.cfg.LocalTesting.Forget {
		if err := r.session.Forget(session.LocationKey); err != nil {
			return nil, fmt.Errorf("can't forget cached location: %w", err)
		}
	}

	ok, err := r.session.Has(session.LocationKey)
	if err != nil {
		return nil, fmt.Errorf("can't check cached location: %w", err)
	}
	if ok {
		loc, err := r.session.Get(session.LocationKey)
		if err != nil {
			return nil, fmt.Errorf("can't get cached location: %w", err)
		}
		if loc != nil {
			r.logger.Debug().Str("ip", loc.IP).Msg("Session cache hit")
			return loc, nil
		}
	}

	addr, err := r.ip.Resolve(env, ip)
	if err != nil {
		return nil, err
	}

	r.lookups.Inc()

	loc, err := r.lookup(ctx, addr)
	if err != nil {
		return nil, err
	}

	if r.cfg.ReverseDNS.Enabled {
		r.enrichHostname(loc)
	}

	if err = r.session.Set(session.LocationKey, loc); err != nil {
		return nil, fmt.Errorf("can't cache location: %w", err)
	}

	return loc, nil
}

// GetField resolves the location and projects a single named attribute.
// The projection runs after full resolution, so a bad field name never
// undoes the lookup or its cache write.
func (r *Resolver) GetField(
	ctx context.Context,
	env Environ,
	ip string,
	field string,
) (string, error) {
	loc, err := r.Get(ctx, env, ip)
	if err != nil {
		return "", err
	}
	return loc.Field(field)
}

// Is reports whether any attribute value of the resolved location equals
// value ignoring case.
func (r *Resolver) Is(
	ctx context.Context,
	env Environ,
	value string,
) (bool, error) {
	loc, err := r.Get(ctx, env, "")
	if err != nil {
		return false, err
	}
	return loc.Is(value), nil
}

// lookup runs the primary driver and, when its record carries the error
// flag, walks the configured fallback chain in order. Driver invocations
// are sequential, never parallel, and a failed driver is replaced, not
// retried.
func (r *Resolver) lookup(
	ctx context.Context,
	addr string,
) (*location.Location, error) {
	name := r.cfg.Driver
	drv, err := r.factory.New(name)
	if err != nil {
		return nil, err
	}

	loc := drv.Lookup(ctx, addr)
	if !loc.Error {
		return loc, nil
	}

	r.logger.Warn().
		Str("driver", name).
		Str("ip", addr).
		Str("fallbacks", common.FormatStringSlice(r.cfg.Fallbacks)).
		Msg("Driver lookup failed, trying fallbacks")

	for _, fb := range r.cfg.Fallbacks {
		name = fb
		r.fallbacks.Inc()

		drv, err = r.factory.New(name)
		if err != nil {
			return nil, err
		}

		loc = drv.Lookup(ctx, addr)
		if !loc.Error {
			r.logger.Debug().
				Str("driver", name).
				Str("ip", addr).
				Msg("Fallback driver succeeded")
			return loc, nil
		}
	}

	r.exhausted.Inc()
	return nil, NoDriverAvailableError{driver: name}
}

// Stats are cold-lookup counters; session cache hits don't count.
type Stats struct {
	Lookups   int64
	Fallbacks int64
	Exhausted int64
}

func (r *Resolver) Stats() Stats {
	return Stats{
		Lookups:   r.lookups.Load(),
		Fallbacks: r.fallbacks.Load(),
		Exhausted: r.exhausted.Load(),
	}
}
