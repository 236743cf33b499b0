package service

import (
	"context"

	"linkfeed/internal/cache"
	"linkfeed/internal/logger"
	"linkfeed/internal/models"
	"linkfeed/internal/repository"
)

// Authorization covers account creation, login and token checks.
type Authorization interface {
	Signup(ctx context.Context, email, password, name string) (models.AuthPayload, error)
	Login(ctx context.Context, email, password string) (models.AuthPayload, error)
	ParseToken(token string) (int, error)
}

// FeedReader answers paginated, filtered and ordered link listings.
type FeedReader interface {
	Feed(ctx context.Context, args models.FeedArgs) (models.Feed, error)
}

// LinkManager reads and mutates individual links. Mutations require an
// authenticated caller in ctx (see WithUserID).
type LinkManager interface {
	Link(ctx context.Context, id int) (*models.LinkDetail, error)
	Post(ctx context.Context, description, url string) (*models.Link, error)
	UpdateLink(ctx context.Context, id int, patch models.LinkPatch) (*models.Link, error)
	DeleteLink(ctx context.Context, id int) (*models.Link, error)
}

// Voter records upvotes.
type Voter interface {
	Vote(ctx context.Context, linkID int) (*models.Vote, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	FeedReader
	LinkManager
	Voter
}

// Options carries policy switches that are not tied to a single store.
type Options struct {
	// EnforceOwnership restricts update and delete to the link's poster.
	EnforceOwnership bool
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, creds *Credentials, feeds cache.FeedCache, opts Options, log *logger.Logger) *Service {
	if feeds == nil {
		feeds = cache.Nop{}
	}
	inv := invalidator{cache: feeds, log: log}
	return &Service{
		Authorization: NewAuthService(repos.Users, creds),
		FeedReader:    NewFeedService(repos.Links, feeds, log),
		LinkManager:   NewLinkService(repos.Links, repos.Users, repos.Votes, inv, opts),
		Voter:         NewVoteService(repos.Links, repos.Users, repos.Votes, inv),
	}
}

// invalidator drops cached feeds after a mutation. Failures are logged, not
// returned: the mutation has already been committed.
type invalidator struct {
	cache cache.FeedCache
	log   *logger.Logger
}

func (i invalidator) invalidate(ctx context.Context) {
	if i.cache == nil {
		return
	}
	if err := i.cache.Invalidate(ctx); err != nil && i.log != nil {
		i.log.Warnw("feed cache invalidation failed", "error", err)
	}
}
