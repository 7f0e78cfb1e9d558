// Package ipapicom is a minimal client for the ip-api.com geolocation API.
package ipapicom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrReservedRange = errors.New("reserved range")
)

type Client interface {
	GetLocationForIP(ctx context.Context, ip string) (*Location, error)
}

// StandardURL is the primary URL.
const StandardURL = "http://ip-api.com"

// ProURL is the keyed URL.
const ProURL = "https://pro.ip-api.com"

func NewClient() Client {
	return NewClientWithBaseURL(StandardURL)
}

func NewClientWithAPIKey(apiKey string) Client {
	return &client{
		fmtURL:     fmt.Sprintf("%s/json/%%s?key=%s", ProURL, apiKey),
		httpClient: &http.Client{},
	}
}

// NewClientWithBaseURL points the client at a different endpoint, e.g. a
// test server.
func NewClientWithBaseURL(baseURL string) Client {
	return &client{
		fmtURL:     fmt.Sprintf("%s/json/%%s", baseURL),
		httpClient: &http.Client{},
	}
}

// Location contains all the relevant data for an IP.
type Location struct {
	As          string  `json:"as"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
	Isp         string  `json:"isp"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Message     string  `json:"message"`
	Org         string  `json:"org"`
	Query       string  `json:"query"`
	Region      string  `json:"region"`
	RegionName  string  `json:"regionName"`
	Status      string  `json:"status"`
	Timezone    string  `json:"timezone"`
	Zip         string  `json:"zip"`
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

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't make http request: %w", err)
	}
	defer resp.Body.Close()

	var l Location
	err = json.NewDecoder(resp.Body).Decode(&l)
	if err != nil {
		return nil, fmt.Errorf("can't parse json answer: %w", err)
	}

	if resp.StatusCode != http.StatusOK || l.Status != "success" {
		switch l.Message {
		case "reserved range":
			return nil, fmt.Errorf("can't catch ip geolocation: %w", ErrReservedRange)
		default:
			return nil, fmt.Errorf("can't catch ip geolocation: %s", l.Message)
		}
	}

	return &l, nil
}
