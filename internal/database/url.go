package database

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"entgo.io/ent/dialect"
)

// ErrUnsupportedURL is returned for database URLs with an unknown scheme.
var ErrUnsupportedURL = errors.New("unsupported database url")

// Descriptor is a parsed DATABASE_URL.
type Descriptor struct {
	// Dialect is the ent dialect name, also used as the database/sql driver name.
	Dialect string
	// DSN is what the driver's Open receives.
	DSN string
	// Name is the database name for PostgreSQL, the file path for SQLite.
	Name string

	url *url.URL
}

// ParseURL understands postgres://, postgresql:// and sqlite:// URLs. SQLite
// URLs always get foreign keys enabled:
//
//	sqlite:///var/lib/do/do.db
//	sqlite://do.db
//	sqlite://do_test?mode=memory&cache=shared
func ParseURL(raw string) (Descriptor, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Descriptor{}, fmt.Errorf("parse database url: %w", err)
	}

	switch u.Scheme {
	case "postgres", "postgresql":
		name := strings.TrimPrefix(u.Path, "/")
		if name == "" {
			return Descriptor{}, fmt.Errorf("%w: missing database name in %q", ErrUnsupportedURL, u.Redacted())
		}
		return Descriptor{Dialect: dialect.Postgres, DSN: raw, Name: name, url: u}, nil
	case "sqlite", "sqlite3":
		path := u.Host + u.Path
		if path == "" {
			return Descriptor{}, fmt.Errorf("%w: missing sqlite path in %q", ErrUnsupportedURL, raw)
		}
		q := u.Query()
		q.Set("_fk", "1")
		return Descriptor{
			Dialect: dialect.SQLite,
			DSN:     "file:" + path + "?" + q.Encode(),
			Name:    path,
			url:     u,
		}, nil
	}
	return Descriptor{}, fmt.Errorf("%w: scheme %q", ErrUnsupportedURL, u.Scheme)
}

// InMemory reports whether the database lives only as long as its connections.
func (d Descriptor) InMemory() bool {
	return d.Dialect == dialect.SQLite &&
		(d.Name == ":memory:" || d.url != nil && d.url.Query().Get("mode") == "memory")
}

// Redacted returns the URL with any password masked, for logs.
func (d Descriptor) Redacted() string {
	if d.url == nil {
		return ""
	}
	return d.url.Redacted()
}

// maintenance returns a descriptor for the server-wide "postgres" database,
// used to create and drop the application database.
func (d Descriptor) maintenance() Descriptor {
	u := *d.url
	u.Path = "/postgres"
	return Descriptor{Dialect: d.Dialect, DSN: u.String(), Name: "postgres", url: &u}
}
