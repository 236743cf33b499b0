package db

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Dialect identifies the SQL backend. Queries are written with '?' placeholders
// and rebound per dialect before execution.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// sqliteTimeLayout sorts lexically in chronological order.
const sqliteTimeLayout = "2006-01-02 15:04:05.000000000"

// ParseDialect maps a configured driver name to a Dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	default:
		return "", fmt.Errorf("unsupported db driver %q", driver)
	}
}

// driverName is the database/sql driver registered for the dialect.
func (d Dialect) driverName() string {
	if d == Postgres {
		return "pgx"
	}
	return "sqlite"
}

// gooseDialect is the dialect name understood by goose.
func (d Dialect) gooseDialect() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite3"
}

// Rebind rewrites '?' placeholders into $1..$n for postgres.
func (d Dialect) Rebind(query string) string {
	if d != Postgres || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Window renders the LIMIT/OFFSET tail for a result window. A nil take means
// no limit; sqlite needs LIMIT -1 to express that when an offset is present.
func (d Dialect) Window(skip int, take *int) (string, []any) {
	switch {
	case take != nil:
		return " LIMIT ? OFFSET ?", []any{*take, skip}
	case skip > 0 && d == SQLite:
		return " LIMIT -1 OFFSET ?", []any{skip}
	case skip > 0:
		return " OFFSET ?", []any{skip}
	default:
		return "", nil
	}
}

// TimeArg converts t into a bind argument the backend stores faithfully.
func (d Dialect) TimeArg(t time.Time) any {
	if d == Postgres {
		return t.UTC()
	}
	return t.UTC().Format(sqliteTimeLayout)
}
