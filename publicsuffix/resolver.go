// Package publicsuffix derives registrable domains using the public suffix
// list from golang.org/x/net/publicsuffix.
package publicsuffix

import (
	"net"
	"net/url"
	"strings"

	"github.com/fwojciec/gradscout"
	"golang.org/x/net/publicsuffix"
)

// Ensure Resolver implements gradscout.DomainResolver at compile time.
var _ gradscout.DomainResolver = (*Resolver)(nil)

// Resolver maps URLs to their eTLD+1.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Domain returns the registrable domain of rawURL, for example
// "ox.ac.uk" for "https://www.ox.ac.uk/admissions". When the eTLD+1 can't
// be derived (IP addresses, bare suffixes, localhost) the lower-cased host
// is returned. An unparsable URL yields an empty string.
func (r *Resolver) Domain(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "" {
		return ""
	}
	if net.ParseIP(host) != nil {
		return host
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domain
}
