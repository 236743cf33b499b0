package repository

import (
	"context"
	"database/sql"

	"linkfeed/internal/models"
	"linkfeed/internal/repository/db"
)

// Users stores accounts. Get methods return (nil, nil) when nothing matches.
type Users interface {
	Create(ctx context.Context, email, name, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// Links stores links and answers feed reads.
type Links interface {
	Create(ctx context.Context, description, url string, postedBy int) (*models.Link, error)
	GetByID(ctx context.Context, id int) (*models.Link, error)
	Find(ctx context.Context, q models.FeedQuery) ([]models.Link, error)
	Count(ctx context.Context, filter string) (int, error)
	Update(ctx context.Context, id int, patch models.LinkPatch) (*models.Link, error)
	Delete(ctx context.Context, id int) (*models.Link, error)
}

// Votes stores the link/voter association. AddVoter is idempotent; the
// store's primary key guarantees a user appears once per link.
type Votes interface {
	AddVoter(ctx context.Context, linkID, userID int) error
	Voters(ctx context.Context, linkID int) ([]models.User, error)
}

type Repository struct {
	Users Users
	Links Links
	Votes Votes
}

func NewRepository(conn *sql.DB, dialect db.Dialect) *Repository {
	return &Repository{
		Users: NewUserSQL(conn, dialect),
		Links: NewLinkSQL(conn, dialect),
		Votes: NewVoteSQL(conn, dialect),
	}
}
