package drivers

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/oschwald/maxminddb-golang/v2"

	"github.com/sornss/location/internal/common"
	"github.com/sornss/location/internal/location"
)

type MaxMindParams struct {
	Path string `json:"path" mapstructure:"path"`
	Lang string `json:"lang" mapstructure:"lang"`
}

// MaxMindDriver resolves locations from a local MaxMind GeoIP2/GeoLite2
// .mmdb database.
type MaxMindDriver struct {
	path string
	lang string
	db   *maxminddb.Reader
}

type maxmindRecord struct {
	Country struct {
		ISOCode string            `maxminddb:"iso_code"`
		Names   map[string]string `maxminddb:"names"`
	} `maxminddb:"country"`
	City struct {
		Names map[string]string `maxminddb:"names"`
	} `maxminddb:"city"`
	Subdivisions []struct {
		ISOCode string            `maxminddb:"iso_code"`
		Names   map[string]string `maxminddb:"names"`
	} `maxminddb:"subdivisions"`
	Postal struct {
		Code string `maxminddb:"code"`
	} `maxminddb:"postal"`
	Location struct {
		Latitude  float64 `maxminddb:"latitude"`
		Longitude float64 `maxminddb:"longitude"`
		TimeZone  string  `maxminddb:"time_zone"`
	} `maxminddb:"location"`
}

func NewMaxMindDriver(cfg common.DriverConfig) (Driver, error) {
	var params MaxMindParams
	err := common.DecodeParams(cfg.Params, &params)
	if err != nil {
		return nil, fmt.Errorf("can't decode params: %w", err)
	}
	if params.Lang == "" {
		params.Lang = "en"
	}

	db, err := maxminddb.Open(params.Path)
	if err != nil {
		return nil, fmt.Errorf("can't open maxmind database: %w", err)
	}

	return &MaxMindDriver{path: params.Path, lang: params.Lang, db: db}, nil
}

func (d *MaxMindDriver) Lookup(_ context.Context, ip string) *location.Location {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return &location.Location{IP: ip, Error: true}
	}

	var rec maxmindRecord
	res := d.db.Lookup(addr)
	if err = res.Decode(&rec); err != nil || !res.Found() {
		return &location.Location{IP: ip, Error: true}
	}

	loc := &location.Location{
		IP:          ip,
		CountryCode: rec.Country.ISOCode,
		Country:     rec.Country.Names[d.lang],
		City:        rec.City.Names[d.lang],
		Zip:         rec.Postal.Code,
		Lat:         rec.Location.Latitude,
		Lon:         rec.Location.Longitude,
		Timezone:    rec.Location.TimeZone,
	}
	if len(rec.Subdivisions) > 0 {
		loc.RegionCode = rec.Subdivisions[0].ISOCode
		loc.Region = rec.Subdivisions[0].Names[d.lang]
	}
	return loc
}

func (d *MaxMindDriver) String() string {
	return fmt.Sprintf("MaxMind(path=%s)", d.path)
}
