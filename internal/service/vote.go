package service

import (
	"context"
	"fmt"

	"linkfeed/internal/common"
	"linkfeed/internal/models"
	"linkfeed/internal/repository"
)

// VoteService adds the caller to a link's voters.
type VoteService struct {
	links repository.Links
	users repository.Users
	votes repository.Votes
	inv   invalidator
}

func NewVoteService(links repository.Links, users repository.Users, votes repository.Votes, inv invalidator) *VoteService {
	return &VoteService{links: links, users: users, votes: votes, inv: inv}
}

// Vote is idempotent: voting twice leaves a single vote.
func (s *VoteService) Vote(ctx context.Context, linkID int) (*models.Vote, error) {
	userID, err := RequireAuthenticated(ctx, "vote")
	if err != nil {
		return nil, err
	}
	if err := s.votes.AddVoter(ctx, linkID, userID); err != nil {
		return nil, err
	}
	s.inv.invalidate(ctx)

	l, err := s.links.GetByID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("link %d: %w", linkID, common.ErrNotFound)
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %d: %w", userID, common.ErrNotFound)
	}
	return &models.Vote{Link: *l, User: *u}, nil
}
