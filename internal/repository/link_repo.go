package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"linkfeed/internal/common"
	"linkfeed/internal/models"
	"linkfeed/internal/repository/db"
)

type LinkSQL struct {
	db      *sql.DB
	dialect db.Dialect
	now     func() time.Time
}

func NewLinkSQL(conn *sql.DB, dialect db.Dialect) *LinkSQL {
	return &LinkSQL{db: conn, dialect: dialect, now: time.Now}
}

// Ensure implementation of Links interface at compile time.
var _ Links = (*LinkSQL)(nil)

const (
	linkColumns = `id, description, url, created_at, posted_by`

	insertLinkSQL     = `INSERT INTO links (description, url, created_at, posted_by) VALUES (?, ?, ?, ?) RETURNING ` + linkColumns
	selectLinkByIDSQL = `SELECT ` + linkColumns + ` FROM links WHERE id = ?`
	deleteLinkSQL     = `DELETE FROM links WHERE id = ? RETURNING ` + linkColumns
	selectLinksSQL    = `SELECT ` + linkColumns + ` FROM links`
	countLinksSQL     = `SELECT COUNT(*) FROM links`

	// description/url substring match; both placeholders take the same pattern
	linkFilterSQL = ` WHERE (description LIKE ? ESCAPE '\' OR url LIKE ? ESCAPE '\')`
)

// orderColumns whitelists sortable fields.
var orderColumns = map[models.OrderField]string{
	models.OrderByDescription: "description",
	models.OrderByURL:         "url",
	models.OrderByCreatedAt:   "created_at",
}

// Create inserts a link owned by postedBy. An unknown owner yields common.ErrNotFound.
func (r *LinkSQL) Create(ctx context.Context, description, url string, postedBy int) (*models.Link, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(insertLinkSQL),
		description,
		url,
		r.dialect.TimeArg(r.now()),
		postedBy,
	)
	l, err := scanLink(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("insert link: user %d: %w", postedBy, common.ErrNotFound)
		}
		return nil, storeError("insert link", err)
	}
	return &l, nil
}

// GetByID fetches a link by id. Returns (nil, nil) if not found.
func (r *LinkSQL) GetByID(ctx context.Context, id int) (*models.Link, error) {
	l, err := scanLink(r.db.QueryRowContext(ctx, r.dialect.Rebind(selectLinkByIDSQL), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeError(fmt.Sprintf("select link %d", id), err)
	}
	return &l, nil
}

// Find returns the filtered, ordered window of links described by q.
func (r *LinkSQL) Find(ctx context.Context, q models.FeedQuery) ([]models.Link, error) {
	where, args := buildLinkFilter(q.Filter)
	orderBy, err := buildOrderBy(q.OrderBy)
	if err != nil {
		return nil, err
	}
	window, windowArgs := r.dialect.Window(q.Skip, q.Take)
	args = append(args, windowArgs...)

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(selectLinksSQL+where+orderBy+window), args...)
	if err != nil {
		return nil, storeError("select links", err)
	}
	defer rows.Close()

	out := make([]models.Link, 0, 16)
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, storeError("scan link", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate links", err)
	}
	return out, nil
}

// Count returns how many links match filter, ignoring any window.
func (r *LinkSQL) Count(ctx context.Context, filter string) (int, error) {
	where, args := buildLinkFilter(filter)
	var n int
	if err := r.db.QueryRowContext(ctx, r.dialect.Rebind(countLinksSQL+where), args...).Scan(&n); err != nil {
		return 0, storeError("count links", err)
	}
	return n, nil
}

// Update applies the present fields of patch. A missing link yields common.ErrNotFound.
func (r *LinkSQL) Update(ctx context.Context, id int, patch models.LinkPatch) (*models.Link, error) {
	if patch.IsEmpty() {
		l, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if l == nil {
			return nil, fmt.Errorf("update link %d: %w", id, common.ErrNotFound)
		}
		return l, nil
	}

	var (
		sets []string
		args []any
	)
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.URL != nil {
		sets = append(sets, "url = ?")
		args = append(args, *patch.URL)
	}
	args = append(args, id)

	q := `UPDATE links SET ` + strings.Join(sets, ", ") + ` WHERE id = ? RETURNING ` + linkColumns
	l, err := scanLink(r.db.QueryRowContext(ctx, r.dialect.Rebind(q), args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("update link %d: %w", id, common.ErrNotFound)
		}
		return nil, storeError(fmt.Sprintf("update link %d", id), err)
	}
	return &l, nil
}

// Delete removes a link and returns it as it was. A missing link yields common.ErrNotFound.
func (r *LinkSQL) Delete(ctx context.Context, id int) (*models.Link, error) {
	l, err := scanLink(r.db.QueryRowContext(ctx, r.dialect.Rebind(deleteLinkSQL), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("delete link %d: %w", id, common.ErrNotFound)
		}
		return nil, storeError(fmt.Sprintf("delete link %d", id), err)
	}
	return &l, nil
}

// buildLinkFilter renders the substring predicate; an empty filter matches all.
func buildLinkFilter(filter string) (string, []any) {
	if filter == "" {
		return "", nil
	}
	pattern := "%" + escapeLike(filter) + "%"
	return linkFilterSQL, []any{pattern, pattern}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in s match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// buildOrderBy renders clauses in sequence; none means store order.
func buildOrderBy(clauses []models.OrderClause) (string, error) {
	if len(clauses) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		col, ok := orderColumns[c.Field]
		if !ok {
			return "", fmt.Errorf("order by %q: %w", c.Field, common.ErrInvalidArgument)
		}
		switch c.Direction {
		case models.SortAsc:
			parts = append(parts, col+" ASC")
		case models.SortDesc:
			parts = append(parts, col+" DESC")
		default:
			return "", fmt.Errorf("order by %q direction %q: %w", c.Field, c.Direction, common.ErrInvalidArgument)
		}
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}
