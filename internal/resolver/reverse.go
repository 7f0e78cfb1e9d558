package resolver

import (
	"strings"

	"github.com/miekg/dns"

	"github.com/sornss/location/internal/location"
)

// enrichHostname fills the record's Hostname from a PTR query against the
// configured resolver. Enrichment is best-effort: a failed query never
// fails the lookup.
func (r *Resolver) enrichHostname(loc *location.Location) {
	addr, err := dns.ReverseAddr(loc.IP)
	if err != nil {
		r.logger.Debug().Err(err).Str("ip", loc.IP).Msg("Can't build PTR name")
		return
	}

	m := new(dns.Msg)
	m.SetQuestion(addr, dns.TypePTR)
	m.RecursionDesired = true

	c := &dns.Client{Timeout: r.cfg.ReverseDNS.Timeout}
	resp, _, err := c.Exchange(m, r.cfg.ReverseDNS.Addr)
	if err != nil {
		r.logger.Debug().Err(err).Str("ip", loc.IP).Msg("PTR query failed")
		return
	}

	for _, a := range resp.Answer {
		ptr, ok := a.(*dns.PTR)
		if !ok {
			continue
		}
		loc.Hostname = strings.TrimSuffix(ptr.Ptr, ".")
		return
	}
}
