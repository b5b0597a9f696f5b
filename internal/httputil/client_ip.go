package httputil

import (
	"net"
	"net/http"
)

// ClientIP returns the peer address of the request without the port. It
// reads only RemoteAddr: forwarding headers are client-controlled, so
// honoring them here would let a caller pick their own rate-limit bucket.
// Behind a trusted proxy the RealIP middleware rewrites RemoteAddr before
// this runs.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr already carries no port.
		return r.RemoteAddr
	}
	return host
}
