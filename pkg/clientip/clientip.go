package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Headers checked in priority order before falling back to RemoteAddr.
var headers = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP extracts the real client IP from proxy headers, falling back to
// RemoteAddr. The returned IP is validated and normalized; when nothing
// valid is found the raw RemoteAddr is returned as-is.
func GetIP(r *http.Request) string {
	for _, header := range headers {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}
		// X-Forwarded-For may hold a chain "client, proxy1, proxy2";
		// the leftmost entry is the original client.
		candidate, _, _ := strings.Cut(value, ",")
		if ip := normalize(candidate); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := normalize(host); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// normalize validates the candidate and returns its canonical form, or an
// empty string when the candidate is not a usable client address.
func normalize(candidate string) string {
	ip := net.ParseIP(strings.TrimSpace(candidate))
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
