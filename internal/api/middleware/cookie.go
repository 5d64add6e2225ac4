package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"
)

const DefaultCookieName = "sid"

// CookieConfig configures the session cookie. An empty Secret makes the
// codec use a random key, so cookies do not survive a restart.
type CookieConfig struct {
	Name   string
	Secret []byte
	TTL    time.Duration
	Secure bool
}

// SessionCookie carries the session token in a signed, HttpOnly cookie.
type SessionCookie struct {
	name   string
	ttl    time.Duration
	secure bool
	codec  *securecookie.SecureCookie
}

func NewSessionCookie(cfg CookieConfig) *SessionCookie {
	name := cfg.Name
	if name == "" {
		name = DefaultCookieName
	}
	secret := cfg.Secret
	if len(secret) == 0 {
		secret = securecookie.GenerateRandomKey(32)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	codec := securecookie.New(secret, nil)
	codec.MaxAge(int(ttl.Seconds()))

	return &SessionCookie{name: name, ttl: ttl, secure: cfg.Secure, codec: codec}
}

// Write sets the cookie for token.
func (sc *SessionCookie) Write(c echo.Context, token string) error {
	value, err := sc.codec.Encode(sc.name, token)
	if err != nil {
		return err
	}
	c.SetCookie(sc.cookie(value, int(sc.ttl.Seconds())))
	return nil
}

// Token returns the session token from the request cookie. A missing,
// tampered or expired cookie yields false.
func (sc *SessionCookie) Token(c echo.Context) (string, bool) {
	ck, err := c.Cookie(sc.name)
	if err != nil || ck.Value == "" {
		return "", false
	}
	var token string
	if err := sc.codec.Decode(sc.name, ck.Value, &token); err != nil || token == "" {
		return "", false
	}
	return token, true
}

// Clear tells the client to drop the cookie.
func (sc *SessionCookie) Clear(c echo.Context) {
	c.SetCookie(sc.cookie("", -1))
}

func (sc *SessionCookie) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sc.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   sc.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
