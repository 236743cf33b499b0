package service

import (
	"context"
	"testing"

	"linkfeed/internal/logger"
	"linkfeed/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newTestCredentials(t *testing.T) *Credentials {
	t.Helper()
	c, err := NewCredentials(CredentialsConfig{Secret: testSecret, BcryptCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("NewCredentials: %v", err)
	}
	return c
}

type testEnv struct {
	svc   *Service
	store *store
	cache *countingCache
	creds *Credentials
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()
	st := newStore()
	repos := &repository.Repository{
		Users: fakeUsers{st},
		Links: fakeLinks{st},
		Votes: fakeVotes{st},
	}
	creds := newTestCredentials(t)
	c := newCountingCache()
	return &testEnv{
		svc:   NewService(repos, creds, c, opts, logger.Nop()),
		store: st,
		cache: c,
		creds: creds,
	}
}

// signup registers a user and returns a context authenticated as them.
func (e *testEnv) signup(t *testing.T, email string) (context.Context, int) {
	t.Helper()
	p, err := e.svc.Signup(context.Background(), email, "pw-"+email, "name "+email)
	if err != nil {
		t.Fatalf("Signup(%s): %v", email, err)
	}
	return WithUserID(context.Background(), p.User.ID), p.User.ID
}
