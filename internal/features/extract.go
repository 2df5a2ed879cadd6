package features

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/publicsuffix"
)

// SuspiciousTLDs lists the public suffixes that raise the suspicious_tld signal.
var SuspiciousTLDs = map[string]struct{}{
	"xyz":   {},
	"zip":   {},
	"click": {},
	"top":   {},
	"tk":    {},
	"ml":    {},
	"ga":    {},
	"cf":    {},
}

// ipv4Shape matches dotted quads by shape only; octet ranges are not checked.
var ipv4Shape = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}$`)

// FeatureSet captures the lexical signals derived from a scanned URL.
type FeatureSet struct {
	Host          string `json:"host"`
	URLLength     int    `json:"url_length"`
	NumDots       int    `json:"num_dots"`
	NumHyphens    int    `json:"num_hyphens"`
	HasHTTPS      bool   `json:"has_https"`
	LooksLikeIP   bool   `json:"looks_like_ip"`
	SuspiciousTLD bool   `json:"suspicious_tld"`
}

// Extract derives the FeatureSet for rawURL. A URL whose host cannot be
// determined yields an empty host and zero host-based counts.
func Extract(rawURL string) FeatureSet {
	host, scheme := splitURL(rawURL)
	return FeatureSet{
		Host:          host,
		URLLength:     utf8.RuneCountInString(rawURL),
		NumDots:       strings.Count(host, "."),
		NumHyphens:    strings.Count(host, "-"),
		HasHTTPS:      scheme == "https",
		LooksLikeIP:   LooksLikeIP(host),
		SuspiciousTLD: IsSuspiciousTLD(Suffix(host)),
	}
}

// LooksLikeIP reports whether host has the shape of an IPv4 literal.
func LooksLikeIP(host string) bool {
	return ipv4Shape.MatchString(host)
}

// IsSuspiciousTLD reports whether suffix is on the denylist.
func IsSuspiciousTLD(suffix string) bool {
	_, ok := SuspiciousTLDs[strings.ToLower(suffix)]
	return ok
}

// Suffix returns the ICANN public suffix of host, or "" when host is empty or
// an IP literal. Privately managed suffixes (blogspot.com and friends) are
// reduced to their last label so only real TLD rules decide the result.
func Suffix(host string) string {
	if host == "" || LooksLikeIP(host) {
		return ""
	}
	suffix, icann := publicsuffix.PublicSuffix(host)
	if icann {
		return suffix
	}
	if idx := strings.LastIndex(host, "."); idx >= 0 {
		return host[idx+1:]
	}
	// A bare label such as "localhost" has no suffix.
	return ""
}

// RegistrableDomain returns the eTLD+1 of host, falling back to host itself.
func RegistrableDomain(host string) string {
	if host == "" || LooksLikeIP(host) {
		return host
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return registrable
}

func splitURL(rawURL string) (host, scheme string) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", ""
	}
	host = strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	return host, strings.ToLower(u.Scheme)
}
