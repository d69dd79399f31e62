package rfc6265

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseCookieDate(t *testing.T) {
	tests := []struct {
		value string
		want  time.Time
	}{
		{
			"Wed, 09 Jun 2021 10:18:14 GMT",
			time.Date(2021, time.June, 9, 10, 18, 14, 0, time.UTC),
		},
		{
			"Thu, 01-Jan-70 00:00:01 GMT",
			time.Date(1970, time.January, 1, 0, 0, 1, 0, time.UTC),
		},
		// no weekday, no zone
		{
			"09 Jun 2021 10:18:14",
			time.Date(2021, time.June, 9, 10, 18, 14, 0, time.UTC),
		},
		// month name casing
		{
			"09 JUN 2021 10:18:14",
			time.Date(2021, time.June, 9, 10, 18, 14, 0, time.UTC),
		},
		{
			"09 jUn 2021 10:18:14",
			time.Date(2021, time.June, 9, 10, 18, 14, 0, time.UTC),
		},
		// single-digit time fields
		{
			"9 Jun 2021 1:2:3",
			time.Date(2021, time.June, 9, 1, 2, 3, 0, time.UTC),
		},
		// non-digit suffixes on numeric fields are discarded
		{
			"09th Jun 2021AD 10:18:14GMT",
			time.Date(2021, time.June, 9, 10, 18, 14, 0, time.UTC),
		},
		// month token with arbitrary suffix
		{
			"09 June 2021 10:18:14",
			time.Date(2021, time.June, 9, 10, 18, 14, 0, time.UTC),
		},
		// repeated and exotic delimiters
		{
			";;09///Jun[2021]10:18:14~~~",
			time.Date(2021, time.June, 9, 10, 18, 14, 0, time.UTC),
		},
		// two-digit year inference boundaries
		{
			"01 Jan 69 00:00:00",
			time.Date(2069, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"01 Jan 70 00:00:00",
			time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"01 Jan 99 00:00:00",
			time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"01 Jan 05 00:00:00",
			time.Date(2005, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"01 Jan 2005 00:00:00",
			time.Date(2005, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		// a time token may carry trailing garbage starting with a non-digit
		{
			"09 Jun 2021 10:18:14:99",
			time.Date(2021, time.June, 9, 10, 18, 14, 0, time.UTC),
		},
		// individually valid upper bounds
		{
			"31 Jan 2021 23:59:59",
			time.Date(2021, time.January, 31, 23, 59, 59, 0, time.UTC),
		},
	}
	for _, test := range tests {
		got, err := ParseCookieDate(test.value)
		if err != nil {
			t.Fatalf("ParseCookieDate(%q): %v", test.value, err)
		}
		if !got.Equal(test.want) {
			t.Fatalf("ParseCookieDate(%q) = %v, want %v", test.value, got, test.want)
		}
	}
}

// The four date fields may appear in any order, and tokens matching no open
// field grammar are ignored.
func TestParseCookieDateFieldOrder(t *testing.T) {
	want := time.Date(2021, time.June, 9, 10, 18, 14, 0, time.UTC)
	values := []string{
		"09 Jun 2021 10:18:14",
		"10:18:14 09 Jun 2021",
		"Jun 09 10:18:14 2021",
		"2021 Jun 09 10:18:14",
		"10:18:14 2021 Jun 09",
		"Wednesday nonsense 09 ;; Jun !! 2021 ?? 10:18:14 GMT trailing garbage",
	}
	for _, value := range values {
		got, err := ParseCookieDate(value)
		if err != nil {
			t.Fatalf("ParseCookieDate(%q): %v", value, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseCookieDate(%q) = %v, want %v", value, got, want)
		}
	}
}

// A field is claimed by the first matching token only. Here "11" claims the
// year slot (day is already taken by "10"), so the later "12" has no open
// grammar left to match and the month is never found.
func TestParseCookieDateClaimOnce(t *testing.T) {
	_, err := ParseCookieDate("12:34:56 10 11 12")
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("err is %v, want ErrMissingField", err)
	}
}

func TestParseCookieDateMissingField(t *testing.T) {
	values := []string{
		"",
		"   ",
		"garbage no date here",
		"09 Jun 2021",          // no time
		"Jun 2021 10:18:14",    // no day: "2021" claims neither day nor month
		"09 2021 10:18:14",     // no month
		"09 Jun 10:18:14",   // no year: "09" day, "Jun" month, time found
		"10:18 09 Jun 2021", // "10:18" is not a time, it claims the day slot
	}
	for _, value := range values {
		_, err := ParseCookieDate(value)
		if !errors.Is(err, ErrMissingField) {
			t.Fatalf("ParseCookieDate(%q) err is %v, want ErrMissingField", value, err)
		}
	}
}

func TestParseCookieDateOutOfRange(t *testing.T) {
	values := []string{
		"00 Jan 2021 10:18:14", // day 0
		"01 Jan 1600 00:00:00", // year below 1601
		"01 Jan 2021 24:00:00", // hour 24
		"01 Jan 2021 10:60:00", // minute 60
		"01 Jan 2021 10:18:60", // second 60
		"31 Jun 2021 10:18:14", // June has 30 days
		"30 Feb 2021 10:18:14", // no such date
		"29 Feb 2021 10:18:14", // 2021 is not a leap year
	}
	for _, value := range values {
		_, err := ParseCookieDate(value)
		if !errors.Is(err, ErrFieldOutOfRange) {
			t.Fatalf("ParseCookieDate(%q) err is %v, want ErrFieldOutOfRange", value, err)
		}
	}
}

func TestParseCookieDateLeapDay(t *testing.T) {
	got, err := ParseCookieDate("29 Feb 2020 00:00:00")
	if err != nil {
		t.Fatalf("ParseCookieDate: %v", err)
	}
	want := time.Date(2020, time.February, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseCookieDateErrorCarriesValue(t *testing.T) {
	value := "not a date"
	_, err := ParseCookieDate(value)
	if err == nil {
		t.Fatal("expected an error")
	}
	if want := `cookie date "not a date"`; !strings.Contains(err.Error(), want) {
		t.Fatalf("error %q does not mention the offending value", err)
	}
}
