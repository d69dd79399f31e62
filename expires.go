// Package cookieexpires parses the Expires attribute of Set-Cookie header
// fields using the lenient cookie-date algorithm of RFC 6265. Servers send
// Expires values in all kinds of broken formats; ExpiresHandler accepts
// anything the RFC 6265 user agent algorithm accepts and rejects the rest
// with an error carrying the offending value.
package cookieexpires

import (
	"fmt"
	"strings"
	"time"

	"github.com/always-cache/cookie-expires/rfc6265"
)

// AttributeName is the Set-Cookie attribute handled by ExpiresHandler.
// Dispatch layers routing attribute values to handlers should match it
// case-insensitively.
const AttributeName = "Expires"

// SetCookie is the cookie state object an ExpiresHandler writes to.
type SetCookie interface {
	SetExpiry(time.Time)
}

// MalformedCookieError is returned for an Expires value that cannot be
// parsed as a cookie-date. It wraps one of the rfc6265 parse failures.
type MalformedCookieError struct {
	// Value is the raw attribute value as received.
	Value string
	err   error
}

func (e MalformedCookieError) Error() string {
	return fmt.Sprintf("invalid 'expires' attribute: %s", e.Value)
}

func (e MalformedCookieError) Unwrap() error {
	return e.err
}

// ExpiresHandler parses Expires attribute values and sets the resulting
// expiry time on a cookie. It is stateless and safe for concurrent use.
type ExpiresHandler struct{}

// Parse parses the given attribute value as a cookie-date and sets the expiry
// time on the cookie. A blank value means there is nothing to set: the cookie
// is left untouched and no error is returned. Any other unparseable value
// returns a MalformedCookieError; the caller decides whether to drop the
// attribute or reject the cookie.
func (ExpiresHandler) Parse(cookie SetCookie, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	date, err := rfc6265.ParseCookieDate(value)
	if err != nil {
		return MalformedCookieError{Value: value, err: err}
	}
	cookie.SetExpiry(date)
	return nil
}

// AttributeName returns the attribute name this handler should be registered
// for.
func (ExpiresHandler) AttributeName() string {
	return AttributeName
}
