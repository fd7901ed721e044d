package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"go.uber.org/zap"
)

const (
	htmxRequestHeader  = "HX-Request"
	htmxRedirectHeader = "HX-Redirect"
)

// IsHTMXRequest reports whether the current request came from HTMX.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(htmxRequestHeader), "true")
}

// renderPage writes the fragment for HTMX requests and the full document
// otherwise.
func renderPage(w http.ResponseWriter, r *http.Request, status int, fragment, full templ.Component) {
	target := full
	if IsHTMXRequest(r) {
		target = fragment
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := target.Render(r.Context(), w); err != nil {
		loggerFrom(r.Context()).Warn("failed to render page", zap.Error(err))
	}
}

// writeRedirect sends a 303 so form posts turn into a GET of location.
// HTMX requests get an HX-Redirect header instead.
func writeRedirect(w http.ResponseWriter, r *http.Request, location string) {
	if IsHTMXRequest(r) {
		w.Header().Set(htmxRedirectHeader, location)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func requireSameOrigin(w http.ResponseWriter, r *http.Request) bool {
	if origin := strings.TrimSpace(r.Header.Get("Origin")); origin != "" {
		if !sameOrigin(origin, r) {
			http.Error(w, "cross-origin request rejected", http.StatusForbidden)
			return false
		}
		return true
	}
	if referer := strings.TrimSpace(r.Referer()); referer != "" {
		if !sameOrigin(referer, r) {
			http.Error(w, "cross-origin request rejected", http.StatusForbidden)
			return false
		}
		return true
	}
	http.Error(w, "cross-origin request rejected", http.StatusForbidden)
	return false
}

func sameOrigin(rawURL string, r *http.Request) bool {
	if rawURL == "" || rawURL == "null" || r == nil {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	if !strings.EqualFold(parsed.Host, r.Host) {
		return false
	}
	if parsed.Scheme != "" {
		return strings.EqualFold(parsed.Scheme, requestScheme(r))
	}
	return true
}

func requestScheme(r *http.Request) string {
	if proto := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); proto != "" {
		parts := strings.Split(proto, ",")
		return strings.ToLower(strings.TrimSpace(parts[0]))
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
