package store

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	cookieexpires "github.com/always-cache/cookie-expires"
)

func TestPutAndAll(t *testing.T) {
	s := NewSQLiteStore("")
	defer s.db.Close()

	persistent := cookieexpires.Cookie{
		Name:       "SID",
		Value:      "31d4d96e407aad42",
		Domain:     "all.example",
		Path:       "/",
		Expires:    time.Date(2031, time.June, 9, 10, 18, 14, 0, time.UTC),
		RawExpires: "Wed, 09 Jun 2031 10:18:14 GMT",
	}
	session := cookieexpires.Cookie{
		Name:   "lang",
		Value:  "en-US",
		Domain: "all.example",
		Path:   "/",
	}
	if err := s.Put(persistent); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(session); err != nil {
		t.Fatal(err)
	}

	cookies, err := s.All("all.example")
	if err != nil {
		t.Fatal(err)
	}
	want := []cookieexpires.Cookie{persistent, session}
	if diff := cmp.Diff(want, cookies); diff != "" {
		t.Fatalf("cookies mismatch (-want +got):\n%s", diff)
	}
}

func TestPutReplacesSameIdentity(t *testing.T) {
	s := NewSQLiteStore("")
	defer s.db.Close()

	cookie := cookieexpires.Cookie{Name: "SID", Value: "old", Domain: "replace.example", Path: "/"}
	if err := s.Put(cookie); err != nil {
		t.Fatal(err)
	}
	cookie.Value = "new"
	if err := s.Put(cookie); err != nil {
		t.Fatal(err)
	}

	cookies, err := s.All("replace.example")
	if err != nil {
		t.Fatal(err)
	}
	if len(cookies) != 1 || cookies[0].Value != "new" {
		t.Fatalf("got %+v", cookies)
	}
}

func TestPurgeExpired(t *testing.T) {
	s := NewSQLiteStore("")
	defer s.db.Close()

	// the shared in-memory db is visible across stores, so use a domain
	// no other test uses
	expired := cookieexpires.Cookie{
		Name: "old", Domain: "purge.example", Path: "/",
		Expires: time.Now().Add(-time.Hour),
	}
	fresh := cookieexpires.Cookie{
		Name: "new", Domain: "purge.example", Path: "/",
		Expires: time.Now().Add(time.Hour),
	}
	session := cookieexpires.Cookie{Name: "lang", Domain: "purge.example", Path: "/"}
	for _, cookie := range []cookieexpires.Cookie{expired, fresh, session} {
		if err := s.Put(cookie); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.PurgeExpired(); err != nil {
		t.Fatal(err)
	}

	cookies, err := s.All("purge.example")
	if err != nil {
		t.Fatal(err)
	}
	if len(cookies) != 2 {
		t.Fatalf("got %d cookies: %+v", len(cookies), cookies)
	}
	for _, cookie := range cookies {
		if cookie.Name == "old" {
			t.Fatal("expired cookie was not purged")
		}
	}
}

func TestPurge(t *testing.T) {
	s := NewSQLiteStore("")
	defer s.db.Close()

	cookie := cookieexpires.Cookie{Name: "SID", Domain: "delete.example", Path: "/"}
	if err := s.Put(cookie); err != nil {
		t.Fatal(err)
	}
	s.Purge("delete.example", "/", "SID")

	cookies, err := s.All("delete.example")
	if err != nil {
		t.Fatal(err)
	}
	if len(cookies) != 0 {
		t.Fatalf("got %+v", cookies)
	}
}
