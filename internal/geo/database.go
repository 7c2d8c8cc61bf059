package geo

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// MaxMindDatabase reads a GeoLite2/GeoIP2 City mmdb file.
type MaxMindDatabase struct {
	reader *geoip2.Reader
}

func OpenMaxMindDatabase(path string) (*MaxMindDatabase, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database %s: %w", path, err)
	}
	return &MaxMindDatabase{reader: reader}, nil
}

func (d *MaxMindDatabase) Lookup(ip net.IP) (Location, bool, error) {
	record, err := d.reader.City(ip)
	if err != nil {
		return Location{}, false, err
	}

	// Addresses missing from the snapshot decode to an empty record.
	if record.Country.IsoCode == "" && record.Location.Latitude == 0 && record.Location.Longitude == 0 {
		return Location{}, false, nil
	}

	return Location{
		City:      record.City.Names["en"],
		Country:   record.Country.IsoCode,
		Latitude:  record.Location.Latitude,
		Longitude: record.Location.Longitude,
	}, true, nil
}

func (d *MaxMindDatabase) Close() error {
	return d.reader.Close()
}

// StaticDatabase is an in-memory table keyed by canonical IP string.
type StaticDatabase map[string]Location

func (d StaticDatabase) Lookup(ip net.IP) (Location, bool, error) {
	loc, ok := d[ip.String()]
	return loc, ok, nil
}
