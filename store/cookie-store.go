package store

import (
	"database/sql"
	"sync"
	"time"

	_ "github.com/glebarez/go-sqlite"

	cookieexpires "github.com/always-cache/cookie-expires"
)

// CookieStore keeps cookies together with their parsed expiry times.
// A cookie is identified by its domain, path and name; storing a cookie with
// the same identity replaces the previous one.
//
// Implementations must be thread-safe!
type CookieStore interface {
	// Put stores the given cookie, replacing any existing cookie with the
	// same domain, path and name.
	Put(cookie cookieexpires.Cookie) error
	// All returns all cookies whose domain starts with the given prefix.
	// An empty prefix returns everything.
	All(domainPrefix string) ([]cookieexpires.Cookie, error)
	// PurgeExpired removes cookies whose expiry time has passed.
	// Session cookies (no expiry) are never purged.
	PurgeExpired() error
	// Purge removes the cookie with the given domain, path and name.
	Purge(domain, path, name string)
}

type SQLiteStore struct {
	db         *sql.DB
	writeMutex *sync.Mutex
}

// NewSQLiteStore creates a new cookie store with the given filename as the db.
// If file name is empty, a new in-memory db is opened.
func NewSQLiteStore(filename string) SQLiteStore {
	if filename == "" {
		filename = "file::memory:?cache=shared"
	}
	db, err := sql.Open("sqlite", filename)
	if err != nil {
		panic(err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS cookies (
		domain TEXT,
		path TEXT,
		name TEXT,
		value TEXT,
		expires INTEGER,
		raw_expires TEXT,
		PRIMARY KEY (domain, path, name)
	)`)
	if err != nil {
		panic(err)
	}
	_, err = db.Exec("CREATE INDEX IF NOT EXISTS cookies_expires_idx ON cookies (expires)")
	if err != nil {
		panic(err)
	}
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		panic(err)
	}
	return SQLiteStore{
		db:         db,
		writeMutex: &sync.Mutex{},
	}
}

func (s SQLiteStore) Put(cookie cookieexpires.Cookie) error {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	// session cookies are stored with a zero expires column
	var expires int64
	if !cookie.Expires.IsZero() {
		expires = cookie.Expires.Unix()
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO cookies
		(domain, path, name, value, expires, raw_expires) VALUES (?, ?, ?, ?, ?, ?)`,
		cookie.Domain, cookie.Path, cookie.Name, cookie.Value, expires, cookie.RawExpires)
	return err
}

func (s SQLiteStore) All(domainPrefix string) ([]cookieexpires.Cookie, error) {
	cookies := make([]cookieexpires.Cookie, 0)
	rows, err := s.db.Query(`SELECT
		domain, path, name, value, expires, raw_expires
		FROM cookies WHERE domain LIKE ? ORDER BY domain, path, name`, domainPrefix+"%")
	if err != nil {
		return cookies, err
	}
	defer rows.Close()
	for rows.Next() {
		var cookie cookieexpires.Cookie
		var expires int64
		if err := rows.Scan(&cookie.Domain, &cookie.Path, &cookie.Name,
			&cookie.Value, &expires, &cookie.RawExpires); err != nil {
			return cookies, err
		}
		if expires != 0 {
			cookie.Expires = time.Unix(expires, 0).UTC()
		}
		cookies = append(cookies, cookie)
	}
	return cookies, rows.Err()
}

func (s SQLiteStore) PurgeExpired() error {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	_, err := s.db.Exec("DELETE FROM cookies WHERE expires > 0 AND expires < ?", time.Now().Unix())
	return err
}

func (s SQLiteStore) Purge(domain, path, name string) {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	_, err := s.db.Exec("DELETE FROM cookies WHERE domain = ? AND path = ? AND name = ?",
		domain, path, name)
	if err != nil {
		panic(err)
	}
}
