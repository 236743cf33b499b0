package service

import (
	"context"
	"fmt"

	"linkfeed/internal/common"
	"linkfeed/internal/models"
	"linkfeed/internal/repository"

	"golang.org/x/sync/errgroup"
)

// LinkService reads and mutates links.
type LinkService struct {
	links repository.Links
	users repository.Users
	votes repository.Votes
	inv   invalidator

	enforceOwnership bool
}

func NewLinkService(links repository.Links, users repository.Users, votes repository.Votes, inv invalidator, opts Options) *LinkService {
	return &LinkService{
		links:            links,
		users:            users,
		votes:            votes,
		inv:              inv,
		enforceOwnership: opts.EnforceOwnership,
	}
}

// Link returns the link with its poster and voters, or nil when absent.
func (s *LinkService) Link(ctx context.Context, id int) (*models.LinkDetail, error) {
	l, err := s.links.GetByID(ctx, id)
	if err != nil || l == nil {
		return nil, err
	}
	detail := &models.LinkDetail{Link: *l, Voters: []models.User{}}

	g, gctx := errgroup.WithContext(ctx)
	if l.PostedByID != nil {
		posterID := *l.PostedByID
		g.Go(func() error {
			u, err := s.users.GetByID(gctx, posterID)
			detail.PostedBy = u
			return err
		})
	}
	g.Go(func() error {
		voters, err := s.votes.Voters(gctx, id)
		if voters != nil {
			detail.Voters = voters
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

// Post creates a link owned by the caller.
func (s *LinkService) Post(ctx context.Context, description, url string) (*models.Link, error) {
	userID, err := RequireAuthenticated(ctx, "post links")
	if err != nil {
		return nil, err
	}
	l, err := s.links.Create(ctx, description, url, userID)
	if err != nil {
		return nil, err
	}
	s.inv.invalidate(ctx)
	return l, nil
}

// UpdateLink applies patch to the link.
func (s *LinkService) UpdateLink(ctx context.Context, id int, patch models.LinkPatch) (*models.Link, error) {
	if err := s.checkOwner(ctx, id, "update links"); err != nil {
		return nil, err
	}
	l, err := s.links.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.inv.invalidate(ctx)
	return l, nil
}

// DeleteLink removes the link and returns its last state.
func (s *LinkService) DeleteLink(ctx context.Context, id int) (*models.Link, error) {
	if err := s.checkOwner(ctx, id, "delete links"); err != nil {
		return nil, err
	}
	l, err := s.links.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.inv.invalidate(ctx)
	return l, nil
}

// checkOwner is a no-op unless ownership is enforced. Links whose poster is
// unknown can then only be changed by nobody.
func (s *LinkService) checkOwner(ctx context.Context, id int, action string) error {
	if !s.enforceOwnership {
		return nil
	}
	userID, err := RequireAuthenticated(ctx, action)
	if err != nil {
		return err
	}
	l, err := s.links.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if l == nil {
		return fmt.Errorf("link %d: %w", id, common.ErrNotFound)
	}
	if l.PostedByID == nil || *l.PostedByID != userID {
		return common.ErrForbidden
	}
	return nil
}
