// Package clientip extracts the originating client IP address from HTTP
// requests behind reverse proxies and CDNs, used to capture session
// provenance at issuance time.
package clientip
