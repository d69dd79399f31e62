package cookieexpires

import "time"

// A Cookie is a minimal cookie state object. It implements SetCookie and is
// what the inspection tooling stores.
type Cookie struct {
	Name   string
	Value  string
	Domain string
	Path   string
	// Expires is the zero time for session cookies.
	Expires time.Time
	// RawExpires is the Expires attribute value as received.
	RawExpires string
}

func (c *Cookie) SetExpiry(t time.Time) {
	c.Expires = t
}

// Session reports whether the cookie has no expiry time set.
func (c *Cookie) Session() bool {
	return c.Expires.IsZero()
}
