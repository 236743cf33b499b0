package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"linkfeed/internal/common"
	"linkfeed/internal/models"
	"linkfeed/internal/repository/db"
)

type UserSQL struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewUserSQL(conn *sql.DB, dialect db.Dialect) *UserSQL {
	return &UserSQL{db: conn, dialect: dialect}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserSQL)(nil)

const (
	insertUserSQL        = `INSERT INTO users (email, name, password_hash) VALUES (?, ?, ?) RETURNING id`
	selectUserByEmailSQL = `SELECT id, email, name, password_hash FROM users WHERE email = ?`
	selectUserByIDSQL    = `SELECT id, email, name, password_hash FROM users WHERE id = ?`
)

// Create inserts a new user. A taken email yields common.ErrDuplicateUser.
func (r *UserSQL) Create(ctx context.Context, email, name, passwordHash string) (*models.User, error) {
	u := models.User{Email: email, Name: name, PasswordHash: passwordHash}
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(insertUserSQL), email, name, passwordHash).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("insert user %q: %w", email, common.ErrDuplicateUser)
		}
		return nil, storeError(fmt.Sprintf("insert user %q", email), err)
	}
	return &u, nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUserByEmailSQL, email)
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserSQL) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.getOne(ctx, selectUserByIDSQL, id)
}

func (r *UserSQL) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, r.dialect.Rebind(query), arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeError(fmt.Sprintf("select user %v", arg), err)
	}
	return &u, nil
}
