package rfc6265

import "strings"

// §  5.2.  The Set-Cookie Header
// §
// §     When a user agent receives a Set-Cookie header field in an HTTP
// §     response, the user agent MAY ignore the Set-Cookie header field in
// §     its entirety.
// §
// §     A user agent MUST use an algorithm equivalent to the following
// §     algorithm to parse a "set-cookie-string":
// §
// §     1.  If the set-cookie-string contains a %x3B (";") character:
// §
// §         The name-value-pair string consists of the characters up to, but
// §         not including, the first %x3B (";"), and the unparsed-attributes
// §         consist of the remainder of the set-cookie-string, including the
// §         %x3B (";") in question.
// §
// §         Otherwise:
// §
// §         The name-value-pair string consists of all the characters
// §         contained in the set-cookie-string, and the unparsed-attributes
// §         is the empty string.

// A SetCookieHeader is the result of splitting one Set-Cookie header field
// value. Attribute values are carried through as received; this package only
// interprets the Expires attribute (via ParseCookieDate).
type SetCookieHeader struct {
	Name       string
	Value      string
	Attributes []Attribute
}

// An Attribute is a cookie attribute as received, with the value unparsed.
// Value-less attributes such as Secure have an empty Value.
type Attribute struct {
	Name  string
	Value string
}

// Attribute returns the value of the first attribute with the given name,
// matched case-insensitively, and whether one was present.
func (h SetCookieHeader) Attribute(name string) (string, bool) {
	for _, av := range h.Attributes {
		if strings.EqualFold(av.Name, name) {
			return av.Value, true
		}
	}
	return "", false
}

// ParseSetCookie splits a set-cookie-string into its name-value pair and
// attributes. A set-cookie-string without a %x3D ("=") in the name-value pair
// yields an empty name with the whole pair as the value.
func ParseSetCookie(header string) SetCookieHeader {
	parts := strings.Split(header, ";")

	// §  2.  If the name-value-pair string lacks a %x3D ("=") character, then
	// §      the name string is empty, and the value string is the value of
	// §      name-value-pair.
	// §
	// §      Otherwise, the name string consists of the characters up to, but
	// §      not including, the first %x3D ("=") character, and the (possibly
	// §      empty) value string consists of the characters after the first
	// §      %x3D ("=") character.
	// §
	// §  3.  Remove any leading or trailing WSP characters from the name
	// §      string and the value string.
	var h SetCookieHeader
	if name, value, ok := splitNameValue(parts[0]); ok {
		h.Name = name
		h.Value = value
	} else {
		h.Value = value
	}

	// §  The user agent MUST use an algorithm equivalent to the following
	// §  algorithm to parse the unparsed-attributes:
	// §
	// §  1.  If the unparsed-attributes string is empty, skip the rest of
	// §      these steps.
	// §
	// §  2.  Discard the first character of the unparsed-attributes (which
	// §      will be a %x3B (";") character).  [...]
	for _, attr := range parts[1:] {
		name, value, _ := splitNameValue(attr)
		if name == "" && value == "" {
			continue
		}
		if name == "" {
			// value-less attribute such as Secure or HttpOnly
			name, value = value, ""
		}
		h.Attributes = append(h.Attributes, Attribute{Name: name, Value: value})
	}
	return h
}

func splitNameValue(pair string) (name, value string, ok bool) {
	if i := strings.Index(pair, "="); i != -1 {
		return strings.TrimSpace(pair[:i]), strings.TrimSpace(pair[i+1:]), true
	}
	return "", strings.TrimSpace(pair), false
}
