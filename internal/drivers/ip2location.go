package drivers

import (
	"context"
	"fmt"
	"strings"

	ip2location "github.com/ip2location/ip2location-go/v9"

	"github.com/sornss/location/internal/common"
	"github.com/sornss/location/internal/location"
)

type IP2LocationParams struct {
	Path string `json:"path" mapstructure:"path"`
}

// IP2LocationDriver resolves locations from a local IP2Location .BIN
// database.
type IP2LocationDriver struct {
	path string
	db   *ip2location.DB
}

func NewIP2LocationDriver(cfg common.DriverConfig) (Driver, error) {
	var params IP2LocationParams
	err := common.DecodeParams(cfg.Params, &params)
	if err != nil {
		return nil, fmt.Errorf("can't decode params: %w", err)
	}

	db, err := ip2location.OpenDB(params.Path)
	if err != nil {
		return nil, fmt.Errorf("can't open ip2location database: %w", err)
	}

	return &IP2LocationDriver{path: params.Path, db: db}, nil
}

func (d *IP2LocationDriver) Lookup(_ context.Context, ip string) *location.Location {
	rec, err := d.db.Get_all(ip)
	// the library reports misses and invalid addresses through sentinel
	// messages inside the record, a real hit always carries a two-letter
	// country code
	if err != nil || len(rec.Country_short) != 2 {
		return &location.Location{IP: ip, Error: true}
	}

	return &location.Location{
		IP:          ip,
		CountryCode: rec.Country_short,
		Country:     rec.Country_long,
		Region:      ip2locationField(rec.Region),
		City:        ip2locationField(rec.City),
		Zip:         ip2locationField(rec.Zipcode),
		Lat:         float64(rec.Latitude),
		Lon:         float64(rec.Longitude),
		Timezone:    ip2locationField(rec.Timezone),
		ISP:         ip2locationField(rec.Isp),
	}
}

// ip2locationField filters the placeholders the library returns: "-" for
// values missing from the data and an advisory message for columns absent
// from the database edition.
func ip2locationField(s string) string {
	if s == "-" || strings.HasPrefix(s, "This parameter is unavailable") {
		return ""
	}
	return s
}

func (d *IP2LocationDriver) String() string {
	return fmt.Sprintf("IP2Location(path=%s)", d.path)
}
