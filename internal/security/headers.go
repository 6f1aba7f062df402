package security

import (
	"net/http"
	"strconv"
)

// Headers applies baseline hardening headers. CORS is handled by the
// router's cors middleware, so it is deliberately absent here.
type Headers struct {
	Enable                bool
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
}

func (h Headers) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Enable {
			hdr := w.Header()
			hdr.Set("X-Content-Type-Options", "nosniff")
			hdr.Set("X-Frame-Options", "DENY")
			hdr.Set("Referrer-Policy", "no-referrer")
			hdr.Set("Permissions-Policy", "geolocation=(), microphone=()")
			// HSTS only makes sense over TLS.
			if h.EnableHSTS && r.TLS != nil {
				hdr.Set("Strict-Transport-Security", h.hstsValue())
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (h Headers) hstsValue() string {
	maxAge := h.HSTSMaxAge
	if maxAge <= 0 {
		maxAge = 31536000
	}
	v := "max-age=" + strconv.Itoa(maxAge)
	if h.HSTSIncludeSubdomains {
		v += "; includeSubDomains"
	}
	return v
}
