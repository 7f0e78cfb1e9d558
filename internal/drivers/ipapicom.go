package drivers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sornss/location/internal/common"
	"github.com/sornss/location/internal/location"
	"github.com/sornss/location/pkg/ipapicom"
)

type IPAPIComParams struct {
	Key     string        `json:"key" mapstructure:"key"`
	BaseURL string        `json:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// IPAPIComDriver resolves locations through the ip-api.com HTTP API.
type IPAPIComDriver struct {
	client  ipapicom.Client
	timeout time.Duration
}

func NewIPAPIComDriver(cfg common.DriverConfig) (Driver, error) {
	var params IPAPIComParams
	err := common.DecodeParams(cfg.Params, &params)
	if err != nil {
		return nil, fmt.Errorf("can't decode params: %w", err)
	}

	var c ipapicom.Client
	switch {
	case params.BaseURL != "":
		c = ipapicom.NewClientWithBaseURL(params.BaseURL)
	case params.Key != "":
		c = ipapicom.NewClientWithAPIKey(params.Key)
	default:
		c = ipapicom.NewClient()
	}

	return &IPAPIComDriver{client: c, timeout: params.Timeout}, nil
}

func (d *IPAPIComDriver) Lookup(ctx context.Context, ip string) *location.Location {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	g, err := d.client.GetLocationForIP(ctx, ip)
	if err != nil {
		return &location.Location{IP: ip, Error: true}
	}

	asn, _, _ := strings.Cut(g.As, " ")
	return &location.Location{
		IP:          ip,
		CountryCode: g.CountryCode,
		Country:     g.Country,
		RegionCode:  g.Region,
		Region:      g.RegionName,
		City:        g.City,
		Zip:         g.Zip,
		Lat:         g.Lat,
		Lon:         g.Lon,
		Timezone:    g.Timezone,
		ISP:         g.Isp,
		Org:         g.Org,
		ASN:         asn,
	}
}

func (d *IPAPIComDriver) String() string {
	return "IPAPICom()"
}
