package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"linkfeed/internal/common"
	"linkfeed/internal/models"
)

// store is an in-memory stand-in for the SQL repositories.
type store struct {
	mu     sync.Mutex
	users  []models.User
	links  []models.Link
	voters map[int][]int
	clock  time.Time

	findCalls int
	failWith  error
}

func newStore() *store {
	return &store{
		voters: map[int][]int{},
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// fakeUsers, fakeLinks and fakeVotes share one store.
type (
	fakeUsers struct{ *store }
	fakeLinks struct{ *store }
	fakeVotes struct{ *store }
)

func (f fakeUsers) Create(_ context.Context, email, name, hash string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return nil, common.ErrDuplicateUser
		}
	}
	u := models.User{ID: len(f.users) + 1, Email: email, Name: name, PasswordHash: hash}
	f.users = append(f.users, u)
	return &u, nil
}

func (f fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (f fakeUsers) GetByID(_ context.Context, id int) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userLocked(id), nil
}

func (s *store) userLocked(id int) *models.User {
	for _, u := range s.users {
		if u.ID == id {
			return &u
		}
	}
	return nil
}

func (s *store) linkIndexLocked(id int) int {
	for i, l := range s.links {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (f fakeLinks) Create(_ context.Context, description, url string, postedBy int) (*models.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.userLocked(postedBy) == nil {
		return nil, common.ErrNotFound
	}
	f.clock = f.clock.Add(time.Minute)
	id := 1
	if n := len(f.links); n > 0 {
		id = f.links[n-1].ID + 1
	}
	by := postedBy
	l := models.Link{ID: id, Description: description, URL: url, CreatedAt: f.clock, PostedByID: &by}
	f.links = append(f.links, l)
	return &l, nil
}

func (f fakeLinks) GetByID(_ context.Context, id int) (*models.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.linkIndexLocked(id); i >= 0 {
		l := f.links[i]
		return &l, nil
	}
	return nil, nil
}

func (s *store) matchLocked(filter string) []models.Link {
	out := []models.Link{}
	for _, l := range s.links {
		if filter == "" || strings.Contains(l.Description, filter) || strings.Contains(l.URL, filter) {
			out = append(out, l)
		}
	}
	return out
}

func (f fakeLinks) Find(_ context.Context, q models.FeedQuery) ([]models.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := f.matchLocked(q.Filter)
	sort.SliceStable(out, func(i, j int) bool {
		for _, c := range q.OrderBy {
			var cmp int
			switch c.Field {
			case models.OrderByDescription:
				cmp = strings.Compare(out[i].Description, out[j].Description)
			case models.OrderByURL:
				cmp = strings.Compare(out[i].URL, out[j].URL)
			case models.OrderByCreatedAt:
				cmp = out[i].CreatedAt.Compare(out[j].CreatedAt)
			}
			if c.Direction == models.SortDesc {
				cmp = -cmp
			}
			if cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
	if q.Skip >= len(out) {
		return []models.Link{}, nil
	}
	out = out[q.Skip:]
	if q.Take != nil && *q.Take < len(out) {
		out = out[:*q.Take]
	}
	return out, nil
}

func (f fakeLinks) Count(_ context.Context, filter string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return 0, f.failWith
	}
	return len(f.matchLocked(filter)), nil
}

func (f fakeLinks) Update(_ context.Context, id int, patch models.LinkPatch) (*models.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.linkIndexLocked(id)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	if patch.Description != nil {
		f.links[i].Description = *patch.Description
	}
	if patch.URL != nil {
		f.links[i].URL = *patch.URL
	}
	l := f.links[i]
	return &l, nil
}

func (f fakeLinks) Delete(_ context.Context, id int) (*models.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.linkIndexLocked(id)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	l := f.links[i]
	f.links = append(f.links[:i], f.links[i+1:]...)
	delete(f.voters, id)
	return &l, nil
}

func (f fakeVotes) AddVoter(_ context.Context, linkID, userID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.linkIndexLocked(linkID) < 0 || f.userLocked(userID) == nil {
		return common.ErrNotFound
	}
	for _, id := range f.voters[linkID] {
		if id == userID {
			return nil
		}
	}
	f.voters[linkID] = append(f.voters[linkID], userID)
	return nil
}

func (f fakeVotes) Voters(_ context.Context, linkID int) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.User{}
	for _, id := range f.voters[linkID] {
		if u := f.userLocked(id); u != nil {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *store) voterCount(linkID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.voters[linkID])
}

// countingCache records calls and keeps entries in a map.
type countingCache struct {
	mu          sync.Mutex
	entries     map[string]models.Feed
	invalidated int
	gen         uint64
	getErr      error
}

func newCountingCache() *countingCache {
	return &countingCache{entries: map[string]models.Feed{}}
}

func (c *countingCache) Get(_ context.Context, key string) (models.Feed, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return models.Feed{}, false, c.getErr
	}
	f, ok := c.entries[key]
	return f, ok, nil
}

func (c *countingCache) Generation(context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, nil
}

func (c *countingCache) Set(_ context.Context, key string, gen uint64, feed models.Feed) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.gen {
		c.entries[key] = feed
	}
	return nil
}

func (c *countingCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	c.gen++
	c.entries = map[string]models.Feed{}
	return nil
}

var errStoreDown = errors.New("store down")

func ptr[T any](v T) *T { return &v }
