package repository

import (
	"context"
	"database/sql"
	"fmt"

	"linkfeed/internal/common"
	"linkfeed/internal/models"
	"linkfeed/internal/repository/db"
)

type VoteSQL struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewVoteSQL(conn *sql.DB, dialect db.Dialect) *VoteSQL {
	return &VoteSQL{db: conn, dialect: dialect}
}

// Ensure implementation of Votes interface at compile time.
var _ Votes = (*VoteSQL)(nil)

const (
	insertVoterSQL = `INSERT INTO link_voters (link_id, user_id) VALUES (?, ?) ON CONFLICT (link_id, user_id) DO NOTHING`

	selectVotersSQL = `
		SELECT u.id, u.email, u.name, u.password_hash
		FROM users u
		JOIN link_voters v ON v.user_id = u.id
		WHERE v.link_id = ?
		ORDER BY u.id`
)

// AddVoter connects userID to linkID. Repeating it is a no-op.
// An unknown link or user yields common.ErrNotFound.
func (r *VoteSQL) AddVoter(ctx context.Context, linkID, userID int) error {
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(insertVoterSQL), linkID, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("add voter %d to link %d: %w", userID, linkID, common.ErrNotFound)
		}
		return storeError(fmt.Sprintf("add voter %d to link %d", userID, linkID), err)
	}
	return nil
}

// Voters lists the users who voted on linkID, by user id.
func (r *VoteSQL) Voters(ctx context.Context, linkID int) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(selectVotersSQL), linkID)
	if err != nil {
		return nil, storeError(fmt.Sprintf("select voters of link %d", linkID), err)
	}
	defer rows.Close()

	out := make([]models.User, 0, 8)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storeError("scan voter", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate voters", err)
	}
	return out, nil
}
