package session

import (
	"encoding/base32"
	"errors"

	"github.com/gorilla/securecookie"
)

const tokenBytes = 32

var tokenEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewToken returns a fresh unguessable session token.
func NewToken() (string, error) {
	b := securecookie.GenerateRandomKey(tokenBytes)
	if b == nil {
		return "", errors.New("session token: entropy source exhausted")
	}
	return tokenEncoding.EncodeToString(b), nil
}
