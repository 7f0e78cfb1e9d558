package common

import (
	"time"

	"github.com/mitchellh/mapstructure"
)

// DefaultDriverPrefix is the namespace drivers are registered under when the
// config does not override it.
const DefaultDriverPrefix = "location."

type DriverConfig struct {
	Name   string         `json:"name" mapstructure:"name"`
	Params map[string]any `json:"params" mapstructure:"params"`
}

type LocalTestingConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	IP      string `json:"ip" mapstructure:"ip"`
	Forget  bool   `json:"forget" mapstructure:"forget"`
}

type ReverseDNSConfig struct {
	Enabled bool          `json:"enabled" mapstructure:"enabled"`
	Addr    string        `json:"addr" mapstructure:"addr"`
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

type SessionConfig struct {
	Type string        `json:"type" mapstructure:"type"`
	Path string        `json:"path" mapstructure:"path"`
	Addr string        `json:"addr" mapstructure:"addr"`
	TTL  time.Duration `json:"ttl" mapstructure:"ttl"`
}

type Config struct {
	Driver       string             `json:"driver" mapstructure:"driver"`
	Fallbacks    []string           `json:"fallbacks" mapstructure:"fallbacks"`
	Prefix       string             `json:"prefix" mapstructure:"prefix"`
	DefaultIP    string             `json:"default_ip" mapstructure:"default_ip"`
	Drivers      []DriverConfig     `json:"drivers" mapstructure:"drivers"`
	LocalTesting LocalTestingConfig `json:"local_testing" mapstructure:"local_testing"`
	ReverseDNS   ReverseDNSConfig   `json:"reverse_dns" mapstructure:"reverse_dns"`
	Session      SessionConfig      `json:"session" mapstructure:"session"`
}

// DriverPrefix returns the configured driver namespace or the default one.
func (c *Config) DriverPrefix() string {
	if c.Prefix == "" {
		return DefaultDriverPrefix
	}
	return c.Prefix
}

// DriverParams returns the construction params configured for a driver name,
// nil when the driver has no params block.
func (c *Config) DriverParams(name string) map[string]any {
	for _, d := range c.Drivers {
		if d.Name == name {
			return d.Params
		}
	}
	return nil
}

// DecodeParams decodes a raw params map into a typed params struct,
// understanding duration strings like "5s".
func DecodeParams(params map[string]any, out any) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     out,
	})
	if err != nil {
		return err
	}
	return d.Decode(params)
}
