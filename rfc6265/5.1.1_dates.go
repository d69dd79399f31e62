package rfc6265

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parse failures returned (wrapped) by ParseCookieDate.
// Test for them with errors.Is.
var (
	// ErrMissingField means the scan finished without finding all of
	// time, day-of-month, month and year.
	ErrMissingField = errors.New("missing date field")
	// ErrFieldOutOfRange means a field was found but failed the bounds
	// checks of step 5, or the fields do not name an existing date.
	ErrFieldOutOfRange = errors.New("date field out of range")
	// ErrNumericOverflow means the digits of a numeric field could not be
	// converted to an integer.
	ErrNumericOverflow = errors.New("numeric date field overflow")
)

// §  5.1.1.  Dates
// §
// §     The user agent MUST use an algorithm equivalent to the following
// §     algorithm to parse a cookie-date.  Note that the various boolean
// §     flags defined as a part of the algorithm (i.e., found-time, found-
// §     day-of-month, found-month, found-year) are initially "not set".
// §
// §     1.  Using the grammar below, divide the cookie-date into date-tokens.
// §
// §        cookie-date     = *delimiter date-token-list *delimiter
// §        date-token-list = date-token *( *delimiter date-token )
// §        date-token      = 1*non-delimiter
// §
// §        delimiter       = %x09 / %x20-2F / %x3B-40 / %x5B-60 / %x7B-7E
// §        non-delimiter   = %x00-08 / %x0A-1F / DIGIT / ":" / ALPHA / %x7F-FF
// §        non-digit       = %x00-2F / %x3A-FF
var delims ['~' + 1]bool

func init() {
	delims[0x09] = true
	for b := 0x20; b <= 0x2f; b++ {
		delims[b] = true
	}
	for b := 0x3b; b <= 0x40; b++ {
		delims[b] = true
	}
	for b := 0x5b; b <= 0x60; b++ {
		delims[b] = true
	}
	for b := 0x7b; b <= 0x7e; b++ {
		delims[b] = true
	}
}

func isDelim(c byte) bool {
	return int(c) < len(delims) && delims[c]
}

// skipDelims advances the cursor past consecutive delimiter characters.
func skipDelims(value string, pos int) int {
	for pos < len(value) && isDelim(value[pos]) {
		pos++
	}
	return pos
}

// copyContent reads the date-token starting at the cursor. It returns the
// token (empty at end of input) and the cursor position just past it.
func copyContent(value string, pos int) (string, int) {
	start := pos
	for pos < len(value) && !isDelim(value[pos]) {
		pos++
	}
	return value[start:pos], pos
}

// §        day-of-month    = 1*2DIGIT ( non-digit *OCTET )
// §        month           = ( "jan" / "feb" / "mar" / "apr" /
// §                            "may" / "jun" / "jul" / "aug" /
// §                            "sep" / "oct" / "nov" / "dec" ) *OCTET
// §        year            = 2*4DIGIT ( non-digit *OCTET )
// §        time            = hms-time ( non-digit *OCTET )
// §        hms-time        = time-field ":" time-field ":" time-field
// §        time-field      = 1*2DIGIT
var (
	timePattern       = regexp.MustCompile(`^([0-9]{1,2}):([0-9]{1,2}):([0-9]{1,2})([^0-9].*)?$`)
	dayOfMonthPattern = regexp.MustCompile(`^([0-9]{1,2})([^0-9].*)?$`)
	monthPattern      = regexp.MustCompile(`(?i)^(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)(.*)?$`)
	yearPattern       = regexp.MustCompile(`^([0-9]{2,4})([^0-9].*)?$`)
)

var months = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// ParseCookieDate parses a cookie-date as used in the Expires attribute of a
// Set-Cookie header field. The returned time is in UTC with zero sub-second
// precision. It is safe for concurrent use.
//
// §     2.  Process each date-token sequentially in the order the date-
// §         tokens appear in the cookie-date:
// §
// §         1.  If the found-time flag is not set and the token matches the
// §             time production, set the found-time flag and set the hour-
// §             value, minute-value, and second-value to the numbers denoted
// §             by the digits in the date-token, respectively.  Skip the
// §             remaining sub-steps and continue to the next date-token.
// §
// §         2.  If the found-day-of-month flag is not set and the date-token
// §             matches the day-of-month production, set the found-day-of-
// §             month flag and set the day-of-month-value to the number
// §             denoted by the date-token.  Skip the remaining sub-steps and
// §             continue to the next date-token.
// §
// §         3.  If the found-month flag is not set and the date-token matches
// §             the month production, set the found-month flag and set the
// §             month-value to the month denoted by the date-token.  Skip the
// §             remaining sub-steps and continue to the next date-token.
// §
// §         4.  If the found-year flag is not set and the date-token matches
// §             the year production, set the found-year flag and set the
// §             year-value to the number denoted by the date-token.  Skip the
// §             remaining sub-steps and continue to the next date-token.
func ParseCookieDate(value string) (time.Time, error) {
	var (
		hour, minute, second int
		day, year            int
		month                time.Month

		foundTime, foundDayOfMonth, foundMonth, foundYear bool
	)

	pos := 0
	for pos < len(value) {
		pos = skipDelims(value, pos)
		var token string
		token, pos = copyContent(value, pos)
		if token == "" {
			break
		}
		if !foundTime {
			if m := timePattern.FindStringSubmatch(token); m != nil {
				var err error
				if hour, err = fieldValue(value, m[1]); err != nil {
					return time.Time{}, err
				}
				if minute, err = fieldValue(value, m[2]); err != nil {
					return time.Time{}, err
				}
				if second, err = fieldValue(value, m[3]); err != nil {
					return time.Time{}, err
				}
				foundTime = true
				continue
			}
		}
		if !foundDayOfMonth {
			if m := dayOfMonthPattern.FindStringSubmatch(token); m != nil {
				var err error
				if day, err = fieldValue(value, m[1]); err != nil {
					return time.Time{}, err
				}
				foundDayOfMonth = true
				continue
			}
		}
		if !foundMonth {
			if m := monthPattern.FindStringSubmatch(token); m != nil {
				month = months[strings.ToLower(m[1])]
				foundMonth = true
				continue
			}
		}
		if !foundYear {
			if m := yearPattern.FindStringSubmatch(token); m != nil {
				var err error
				if year, err = fieldValue(value, m[1]); err != nil {
					return time.Time{}, err
				}
				foundYear = true
				continue
			}
		}
	}

	// §     5.  Abort these steps and fail to parse the cookie-date if:
	// §
	// §         *  the found-day-of-month, found-month, found-year, or found-
	// §            time flag is not set,
	if !foundTime || !foundDayOfMonth || !foundMonth || !foundYear {
		return time.Time{}, fmt.Errorf("cookie date %q: %w", value, ErrMissingField)
	}

	// §     3.  If the year-value is greater than or equal to 70 and less
	// §         than or equal to 99, increment the year-value by 1900.
	// §
	// §     4.  If the year-value is greater than or equal to 0 and less than
	// §         or equal to 69, increment the year-value by 2000.
	// §
	// §         1.  NOTE: Some existing user agents interpret two-digit years
	// §             differently.
	if year >= 70 && year <= 99 {
		year += 1900
	}
	if year >= 0 && year <= 69 {
		year += 2000
	}

	// §         *  the day-of-month-value is less than 1 or greater than 31,
	// §
	// §         *  the year-value is less than 1601,
	// §
	// §         *  the hour-value is greater than 23,
	// §
	// §         *  the minute-value is greater than 59, or
	// §
	// §         *  the second-value is greater than 59.
	// §
	// §         (Note that leap seconds cannot be represented in this syntax.)
	if day < 1 || day > 31 || year < 1601 || hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, fmt.Errorf("cookie date %q: %w", value, ErrFieldOutOfRange)
	}

	// §     6.  Let the parsed-cookie-date be the date whose day-of-month,
	// §         month, year, hour, minute, and second (in UTC) are the day-
	// §         of-month-value, the month-value, the year-value, the hour-
	// §         value, the minute-value, and the second-value, respectively.
	// §         If no such date exists, abort these steps and fail to parse
	// §         the cookie-date.
	// §
	// §     7.  Return the parsed-cookie-date as the result of this
	// §         algorithm.
	date := time.Date(year, month, day, hour, minute, second, 0, time.UTC)
	if date.Year() != year || date.Month() != month || date.Day() != day {
		return time.Time{}, fmt.Errorf("cookie date %q: %w", value, ErrFieldOutOfRange)
	}
	return date, nil
}

func fieldValue(value, digits string) (int, error) {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("cookie date %q: %w", value, ErrNumericOverflow)
	}
	return n, nil
}
