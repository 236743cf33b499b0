package service

import (
	"context"
	"fmt"

	"linkfeed/internal/common"
	"linkfeed/internal/models"
	"linkfeed/internal/repository"
)

// AuthService handles signup and login.
type AuthService struct {
	users repository.Users
	creds *Credentials
}

func NewAuthService(users repository.Users, creds *Credentials) *AuthService {
	return &AuthService{users: users, creds: creds}
}

// Signup hashes the password, stores the user and returns a session token.
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (models.AuthPayload, error) {
	if password == "" {
		return models.AuthPayload{}, fmt.Errorf("%w: password is empty", common.ErrInvalidArgument)
	}
	hash, err := s.creds.Hash(password)
	if err != nil {
		return models.AuthPayload{}, err
	}
	u, err := s.users.Create(ctx, email, name, hash)
	if err != nil {
		return models.AuthPayload{}, err
	}
	return s.payload(u)
}

// Login checks the password against the stored hash.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.AuthPayload, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return models.AuthPayload{}, err
	}
	if u == nil {
		return models.AuthPayload{}, fmt.Errorf("%w: no user for email %q", common.ErrNotFound, email)
	}
	if !s.creds.Verify(password, u.PasswordHash) {
		return models.AuthPayload{}, common.ErrInvalidCredential
	}
	return s.payload(u)
}

// ParseToken returns the user id a token was issued for.
func (s *AuthService) ParseToken(token string) (int, error) {
	return s.creds.VerifyToken(token)
}

func (s *AuthService) payload(u *models.User) (models.AuthPayload, error) {
	token, err := s.creds.IssueToken(u.ID)
	if err != nil {
		return models.AuthPayload{}, fmt.Errorf("issue token: %w", err)
	}
	return models.AuthPayload{Token: token, User: *u}, nil
}
