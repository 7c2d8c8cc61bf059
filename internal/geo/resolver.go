// Package geo maps client IP addresses to a coarse location.
package geo

import (
	"errors"
	"fmt"
	"net"

	"github.com/rs/zerolog/log"
)

var ErrLocationUnresolved = errors.New("location unresolved")

type Location struct {
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Database is a read-only IP to location snapshot. ok is false when the
// snapshot has no record for ip.
type Database interface {
	Lookup(ip net.IP) (loc Location, ok bool, err error)
}

type Resolver interface {
	Resolve(ip string) (Location, error)
}

type resolver struct {
	db         Database
	fallbackIP net.IP
}

// NewResolver returns a Resolver that looks up fallbackIP instead of any
// loopback address.
func NewResolver(db Database, fallbackIP string) (Resolver, error) {
	parsed := net.ParseIP(fallbackIP)
	if parsed == nil {
		return nil, fmt.Errorf("invalid fallback IP %q", fallbackIP)
	}

	return &resolver{db: db, fallbackIP: parsed}, nil
}

func (r *resolver) Resolve(ip string) (Location, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return Location{}, fmt.Errorf("%w: invalid IP address %q", ErrLocationUnresolved, ip)
	}

	if parsed.IsLoopback() {
		log.Debug().Str("ip", ip).Str("fallback_ip", r.fallbackIP.String()).Msg("loopback address, using fallback IP")
		parsed = r.fallbackIP
	}

	loc, ok, err := r.db.Lookup(parsed)
	if err != nil {
		return Location{}, fmt.Errorf("%w: lookup %s: %v", ErrLocationUnresolved, parsed, err)
	}
	if !ok {
		return Location{}, fmt.Errorf("%w: no record for %s", ErrLocationUnresolved, parsed)
	}

	return loc, nil
}
