// Package clientip extracts real client IP addresses from HTTP requests.
//
// Proxy headers are checked in priority order before falling back to
// RemoteAddr:
//
//  1. CF-Connecting-IP (Cloudflare)
//  2. DO-Connecting-IP (DigitalOcean)
//  3. X-Forwarded-For (leftmost entry is the original client)
//  4. X-Real-IP (nginx and other proxies)
//  5. RemoteAddr (direct connection)
//
// All candidates are validated with net.ParseIP and normalized; malformed
// headers and the unspecified address 0.0.0.0 are skipped. IPv6 is fully
// supported. GetIP never panics and always returns a string, falling back to
// the raw RemoteAddr when nothing valid is found.
//
//	ip := clientip.GetIP(r)
//	result, err := limiter.Allow(r.Context(), ip)
package clientip
