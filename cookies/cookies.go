// Package cookies delivers issued tokens to browsers. It implements the
// engine's token sink on top of net/http cookies: both tokens travel in
// HttpOnly cookies the page cannot read, while the anti-forgery token is
// deliberately script-readable so the client can echo it in a header.
package cookies

import (
	"net/http"
	"time"

	authgate "github.com/tkondic/authgate"
	"github.com/tkondic/authgate/internal"
)

const (
	// AccessCookie carries the signed access token.
	AccessCookie = "auth_token"
	// RefreshCookie carries the opaque refresh token.
	RefreshCookie = "refresh_token"
	// CSRFCookie carries the script-readable anti-forgery token.
	CSRFCookie = "csrf_token"
)

// Config controls cookie attributes. The zero value plus [DefaultConfig]
// gives Strict same-site, Secure, host-only cookies on path /.
type Config struct {
	Path       string
	Domain     string
	Secure     bool
	SameSite   http.SameSite
	RefreshTTL time.Duration
}

// DefaultConfig returns the production posture: Secure, SameSite=Strict,
// 7-day refresh cookie lifetime.
func DefaultConfig() Config {
	return Config{
		Path:       "/",
		Secure:     true,
		SameSite:   http.SameSiteStrictMode,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

// ResponseSink binds one request/response pair to the engine's token sink
// contract. Construct one per request and pass it to Login, SignUp, or
// Logout.
type ResponseSink struct {
	w   http.ResponseWriter
	r   *http.Request
	cfg Config
}

// NewResponseSink creates a sink writing to w and reading client-presented
// cookies from r.
func NewResponseSink(w http.ResponseWriter, r *http.Request, cfg Config) *ResponseSink {
	if cfg.Path == "" {
		cfg.Path = "/"
	}
	if cfg.SameSite == 0 {
		cfg.SameSite = http.SameSiteStrictMode
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &ResponseSink{w: w, r: r, cfg: cfg}
}

var _ authgate.TokenSink = (*ResponseSink)(nil)

// Store sets the three session cookies. The access and refresh cookies are
// HttpOnly; the anti-forgery cookie is not, on purpose.
func (s *ResponseSink) Store(tokens authgate.TokenPair) (string, error) {
	csrf, err := internal.NewCSRFToken()
	if err != nil {
		return "", err
	}

	s.set(AccessCookie, tokens.AccessToken, tokens.AccessExpiry, true)
	s.set(RefreshCookie, tokens.RefreshToken, s.cfg.RefreshTTL, true)
	s.set(CSRFCookie, csrf, tokens.AccessExpiry, false)

	return csrf, nil
}

// Clear expires all three cookies. It does not check whether they were set;
// clearing an empty session is a no-op for the browser.
func (s *ResponseSink) Clear() {
	for _, name := range []string{AccessCookie, RefreshCookie, CSRFCookie} {
		http.SetCookie(s.w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     s.cfg.Path,
			Domain:   s.cfg.Domain,
			MaxAge:   -1,
			Secure:   s.cfg.Secure,
			HttpOnly: name != CSRFCookie,
			SameSite: s.cfg.SameSite,
		})
	}
}

// CSRFToken returns the anti-forgery token the client sent, if any.
func (s *ResponseSink) CSRFToken() (string, bool) {
	if s.r == nil {
		return "", false
	}
	c, err := s.r.Cookie(CSRFCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (s *ResponseSink) set(name, value string, ttl time.Duration, httpOnly bool) {
	http.SetCookie(s.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     s.cfg.Path,
		Domain:   s.cfg.Domain,
		MaxAge:   int(ttl / time.Second),
		Secure:   s.cfg.Secure,
		HttpOnly: httpOnly,
		SameSite: s.cfg.SameSite,
	})
}
