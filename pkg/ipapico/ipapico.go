// Package ipapico is a minimal client for the ipapi.co geolocation API.
package ipapico

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	ErrReservedRange = errors.New("reserved ip address")
)

type Client interface {
	GetLocationForIP(ctx context.Context, ip string) (*Location, error)
}

// StandardURL is the primary URL.
const StandardURL = "https://ipapi.co"

func NewClient() Client {
	return NewClientWithBaseURL(StandardURL)
}

func NewClientWithAPIKey(apiKey string) Client {
	return &client{
		fmtURL:     fmt.Sprintf("%s/%%s/json/?key=%s", StandardURL, apiKey),
		httpClient: &http.Client{},
	}
}

// NewClientWithBaseURL points the client at a different endpoint, e.g. a
// test server.
func NewClientWithBaseURL(baseURL string) Client {
	return &client{
		fmtURL:     fmt.Sprintf("%s/%%s/json/", baseURL),
		httpClient: &http.Client{},
	}
}

// Location contains all the relevant data for an IP.
type Location struct {
	IP                 string  `json:"ip"`
	City               string  `json:"city"`
	Region             string  `json:"region"`
	RegionCode         string  `json:"region_code"`
	Country            string  `json:"country"`
	CountryName        string  `json:"country_name"`
	ContinentCode      string  `json:"continent_code"`
	InEu               bool    `json:"in_eu"`
	Postal             string  `json:"postal"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	Timezone           string  `json:"timezone"`
	UtcOffset          string  `json:"utc_offset"`
	CountryCallingCode string  `json:"country_calling_code"`
	Currency           string  `json:"currency"`
	Languages          string  `json:"languages"`
	Asn                string  `json:"asn"`
	Org                string  `json:"org"`
	IsError            bool    `json:"error"`
	Reason             string  `json:"reason"`
}

type client struct {
	fmtURL     string
	httpClient *http.Client
}

// GetLocationForIP retrieves the supplied IP address's location information.
func (c *client) GetLocationForIP(ctx context.Context, ip string) (*Location, error) {
	url := fmt.Sprintf(c.fmtURL, ip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("can't create http request: %w", err)
	}

	// they ban the default go useragent
	req.Header.Set("User-Agent", "ipapi.co/#go")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't make http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("can't read http response body: %w", err)
	}

	var l Location
	err = json.Unmarshal(body, &l)
	if err != nil {
		return nil, fmt.Errorf("can't parse json answer \"%s\": %w", body, err)
	}

	if resp.StatusCode != http.StatusOK || l.IsError {
		if strings.EqualFold(l.Reason, ErrReservedRange.Error()) {
			return nil, fmt.Errorf("can't catch ip geolocation: %w", ErrReservedRange)
		}
		return nil, fmt.Errorf("can't catch ip geolocation: %s", l.Reason)
	}

	return &l, nil
}
