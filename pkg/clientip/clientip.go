package clientip

import (
	"net"
	"net/http"
	"strings"
)

// proxyHeaders are checked in priority order. CF-Connecting-IP and
// X-Real-IP carry a single address; X-Forwarded-For may carry a chain where
// the first entry is the original client.
var proxyHeaders = []string{"CF-Connecting-IP", "X-Real-IP", "X-Forwarded-For"}

// GetIP extracts the originating client IP from a request, looking through
// common reverse-proxy headers before falling back to the connection's
// remote address. Returns an empty string only if nothing parseable is
// found.
func GetIP(r *http.Request) string {
	for _, header := range proxyHeaders {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}

		// First address in a comma-separated chain is the client.
		candidate, _, _ := strings.Cut(value, ",")
		candidate = strings.TrimSpace(candidate)
		if ip := net.ParseIP(candidate); ip != nil {
			return ip.String()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr may already be a bare IP in tests or unusual listeners.
		if ip := net.ParseIP(r.RemoteAddr); ip != nil {
			return ip.String()
		}
		return ""
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.String()
	}
	return ""
}
