package repository

import (
	"database/sql"
	"fmt"
	"time"

	"linkfeed/internal/models"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// sqlTime scans timestamps that sqlite may hand back as text.
type sqlTime struct {
	time.Time
}

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

func (t *sqlTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (t *sqlTime) parse(s string) error {
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

func scanUser(s rowScanner) (models.User, error) {
	var u models.User
	err := s.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash)
	return u, err
}

func scanLink(s rowScanner) (models.Link, error) {
	var (
		l         models.Link
		createdAt sqlTime
		postedBy  sql.NullInt64
	)
	if err := s.Scan(&l.ID, &l.Description, &l.URL, &createdAt, &postedBy); err != nil {
		return models.Link{}, err
	}
	l.CreatedAt = createdAt.Time
	if postedBy.Valid {
		id := int(postedBy.Int64)
		l.PostedByID = &id
	}
	return l, nil
}
