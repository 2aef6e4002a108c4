package auth

import (
	"net"
	"net/http"
	"strings"

	"mastermind/pkg/logger"
	"mastermind/pkg/utils"
)

// SecConfig holds the security settings applied by the gateway middleware.
type SecConfig struct {
	RPS            float64
	Burst          int
	AllowedOrigins []string
	Keys           map[string]struct{}
}

// NewSecConfig builds a SecConfig from the flat slices the config layer
// produces.
func NewSecConfig(rps float64, burst int, origins, keys []string) SecConfig {
	km := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k != "" {
			km[k] = struct{}{}
		}
	}
	return SecConfig{RPS: rps, Burst: burst, AllowedOrigins: origins, Keys: km}
}

// openPath reports whether a path is reachable without an API key.
// Probes and docs stay open so load balancers and browsers can reach them.
func openPath(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	p := r.URL.Path
	if p == "/healthz" || p == "/readyz" || p == "/metrics" {
		return true
	}
	return strings.HasPrefix(p, "/docs") || p == "/openapi.yaml"
}

// GatewayMiddleware handles CORS, API key authentication and per-caller
// rate limiting. When no keys are configured the server runs open and
// only rate limiting applies.
func GatewayMiddleware(cfg SecConfig) func(http.Handler) http.Handler {
	// rate limiters keyed by api key or remote ip
	limiters := &limiterPool{cfg: cfg}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// log request (redacts sensitive headers)
			logger.LogRequest(r)

			// cors preflight
			origin := r.Header.Get("Origin")
			if origin != "" && originAllowed(origin, cfg.AllowedOrigins) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
				w.Header().Set("Access-Control-Max-Age", "600")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type,X-API-Key")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			key, hasKey := apiKey(r)
			limitKey := key
			if limitKey == "" {
				limitKey = clientIP(r)
			}

			if !openPath(r) && len(cfg.Keys) > 0 {
				if !hasKey {
					utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
					logger.Warn("request_unauthorized", "path", r.URL.Path, "remote", r.RemoteAddr)
					return
				}
				if _, ok := cfg.Keys[key]; !ok {
					utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
					logger.Warn("request_unauthorized", "reason", "unknown_key", "path", r.URL.Path)
					return
				}
			}

			// rate limiting
			if !limiters.Allow(limitKey) {
				utils.JSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
				logger.Warn("rate_limited", "has_api_key", hasKey, "path", r.URL.Path)
				return
			}

			logger.Debug("request_allowed", "method", r.Method, "path", r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed []string) bool {
	if len(allowed) == 0 {
		return false
	}
	for _, a := range allowed {
		if a == "*" || strings.EqualFold(a, origin) {
			return true
		}
	}
	return false
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func apiKey(r *http.Request) (string, bool) {
	// prefer authorization: bearer <key>, fallback to x-api-key
	auth := r.Header.Get("Authorization")
	var key string
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		key = strings.TrimSpace(auth[7:])
	}
	if key == "" {
		key = r.Header.Get("X-API-Key")
	}
	return key, key != ""
}
