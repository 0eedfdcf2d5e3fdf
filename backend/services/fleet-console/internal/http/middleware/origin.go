package middleware

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// OriginPolicy decides which browsers may drive the gateway. Loopback hosts and
// same-origin requests are always accepted; the lists add to that.
type OriginPolicy struct {
	// AllowedOrigins are scheme://host[:port] values a browser UI may call from.
	AllowedOrigins []string
	// AllowedHosts are extra Host header names (without port) besides loopback.
	AllowedHosts []string
}

// OriginGuard rejects requests whose Host is not loopback or allowed, which stops DNS
// rebinding, and requests carrying an Origin outside the policy, which stops cross-site
// form posts.
func OriginGuard(policy OriginPolicy, logger *zap.Logger) func(http.Handler) http.Handler {
	origins := make(map[string]struct{}, len(policy.AllowedOrigins))
	for _, o := range policy.AllowedOrigins {
		if o = normalizeOrigin(o); o != "" {
			origins[o] = struct{}{}
		}
	}
	hosts := make(map[string]struct{}, len(policy.AllowedHosts))
	for _, h := range policy.AllowedHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			hosts[h] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := hostname(r.Host)
			if _, ok := hosts[host]; !ok && !isLoopback(host) {
				logger.Warn("rejected request for foreign host", zap.String("host", r.Host), zap.String("path", r.URL.Path))
				writeError(w, http.StatusForbidden, "host not allowed")
				return
			}

			if origin := r.Header.Get("Origin"); origin != "" {
				if !originAllowed(origin, r.Host, origins) {
					logger.Warn("rejected cross-origin request", zap.String("origin", origin), zap.String("path", r.URL.Path))
					writeError(w, http.StatusForbidden, "origin not allowed")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin, requestHost string, allowed map[string]struct{}) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	if strings.EqualFold(u.Host, requestHost) {
		return true
	}
	_, ok := allowed[normalizeOrigin(origin)]
	return ok
}

func normalizeOrigin(origin string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(origin)), "/")
}

func hostname(hostport string) string {
	host := hostport
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		host = h
	}
	return strings.ToLower(strings.Trim(host, "[]"))
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
