package resolver

import (
	"net"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sornss/location/internal/common"
)

// Environ is the request environment the client IP is sniffed from. It
// abstracts proxy headers and the remote socket address so source ordering
// stays testable without a real HTTP request.
type Environ interface {
	Lookup(name string) string
	RemoteAddr() string
}

// Source is one named place a client IP may come from.
type Source struct {
	Name    string
	Extract func(env Environ) string
}

// DefaultSources returns the IP sources in priority order. Client-asserted
// proxy headers are preferred over the remote socket address, so the
// ordering matters for correctness behind proxies.
func DefaultSources() []Source {
	return []Source{
		{"client-ip", headerSource("Client-IP")},
		{"x-forwarded-for", chainSource("X-Forwarded-For")},
		{"x-forwarded", headerSource("X-Forwarded")},
		{"forwarded-for", chainSource("Forwarded-For")},
		{"forwarded", headerSource("Forwarded")},
		{"x-real-ip", headerSource("X-Real-IP")},
		{"remote-addr", func(env Environ) string {
			return stripPort(env.RemoteAddr())
		}},
	}
}

func headerSource(name string) func(Environ) string {
	return func(env Environ) string {
		return strings.TrimSpace(env.Lookup(name))
	}
}

// chainSource takes the first element of a comma-separated proxy chain,
// the original client.
func chainSource(name string) func(Environ) string {
	return func(env Environ) string {
		v, _, _ := strings.Cut(env.Lookup(name), ",")
		return strings.TrimSpace(v)
	}
}

func stripPort(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

// RequestEnviron adapts an incoming http request.
type RequestEnviron struct {
	req *http.Request
}

func NewRequestEnviron(r *http.Request) *RequestEnviron {
	return &RequestEnviron{req: r}
}

func (e *RequestEnviron) Lookup(name string) string {
	return e.req.Header.Get(name)
}

func (e *RequestEnviron) RemoteAddr() string {
	return e.req.RemoteAddr
}

// MapEnviron is a static environment for CLI and tests.
type MapEnviron struct {
	Values map[string]string
	Addr   string
}

func (e *MapEnviron) Lookup(name string) string {
	return e.Values[name]
}

func (e *MapEnviron) RemoteAddr() string {
	return e.Addr
}

// IPResolver determines the IP address a lookup runs against.
type IPResolver struct {
	cfg      *common.Config
	sources  []Source
	validate *validator.Validate
}

func NewIPResolver(cfg *common.Config) *IPResolver {
	return &IPResolver{
		cfg:      cfg,
		sources:  DefaultSources(),
		validate: validator.New(),
	}
}

// Resolve picks the IP for a lookup. An explicit address is validated as
// IPv4/IPv6 syntax and returned unchanged; an invalid one never reaches a
// driver. Without an explicit address the configured testing IP wins
// (verbatim, operator-trusted), then the environment sources in order, then
// the configured default.
func (r *IPResolver) Resolve(env Environ, explicit string) (string, error) {
	if explicit != "" {
		if err := r.validate.Var(explicit, "ip"); err != nil {
			return "", InvalidAddressError{addr: explicit}
		}
		return explicit, nil
	}

	if r.cfg.LocalTesting.Enabled {
		return r.cfg.LocalTesting.IP, nil
	}

	if env != nil {
		for _, s := range r.sources {
			if v := s.Extract(env); v != "" {
				return v, nil
			}
		}
	}

	return r.cfg.DefaultIP, nil
}
