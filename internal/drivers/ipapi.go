package drivers

import (
	"context"
	"fmt"
	"time"

	"github.com/sornss/location/internal/common"
	"github.com/sornss/location/internal/location"
	"github.com/sornss/location/pkg/ipapico"
)

type IPAPIParams struct {
	Key     string        `json:"key" mapstructure:"key"`
	BaseURL string        `json:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// IPAPIDriver resolves locations through the ipapi.co HTTP API.
type IPAPIDriver struct {
	client  ipapico.Client
	timeout time.Duration
}

func NewIPAPIDriver(cfg common.DriverConfig) (Driver, error) {
	var params IPAPIParams
	err := common.DecodeParams(cfg.Params, &params)
	if err != nil {
		return nil, fmt.Errorf("can't decode params: %w", err)
	}

	var c ipapico.Client
	switch {
	case params.BaseURL != "":
		c = ipapico.NewClientWithBaseURL(params.BaseURL)
	case params.Key != "":
		c = ipapico.NewClientWithAPIKey(params.Key)
	default:
		c = ipapico.NewClient()
	}

	return &IPAPIDriver{client: c, timeout: params.Timeout}, nil
}

func (d *IPAPIDriver) Lookup(ctx context.Context, ip string) *location.Location {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	g, err := d.client.GetLocationForIP(ctx, ip)
	if err != nil {
		return &location.Location{IP: ip, Error: true}
	}

	return &location.Location{
		IP:          ip,
		CountryCode: g.Country,
		Country:     g.CountryName,
		RegionCode:  g.RegionCode,
		Region:      g.Region,
		City:        g.City,
		Zip:         g.Postal,
		Lat:         g.Latitude,
		Lon:         g.Longitude,
		Timezone:    g.Timezone,
		Org:         g.Org,
		ASN:         g.Asn,
	}
}

func (d *IPAPIDriver) String() string {
	return "IPAPI()"
}
