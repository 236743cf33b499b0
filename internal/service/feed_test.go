package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"linkfeed/internal/cache"
	"linkfeed/internal/common"
	"linkfeed/internal/logger"
	"linkfeed/internal/models"
	"linkfeed/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFeedQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q, err := BuildFeedQuery(models.FeedArgs{})
		require.NoError(t, err)
		assert.Equal(t, models.FeedQuery{}, q)
	})

	t.Run("window and filter", func(t *testing.T) {
		q, err := BuildFeedQuery(models.FeedArgs{Filter: ptr("go"), Skip: ptr(2), Take: ptr(0)})
		require.NoError(t, err)
		assert.Equal(t, "go", q.Filter)
		assert.Equal(t, 2, q.Skip)
		require.NotNil(t, q.Take)
		assert.Equal(t, 0, *q.Take)
	})

	t.Run("drops clauses without direction", func(t *testing.T) {
		q, err := BuildFeedQuery(models.FeedArgs{OrderBy: []models.OrderClause{
			{Field: models.OrderByCreatedAt},
			{Field: models.OrderByURL, Direction: models.SortAsc},
		}})
		require.NoError(t, err)
		assert.Equal(t, []models.OrderClause{{Field: models.OrderByURL, Direction: models.SortAsc}}, q.OrderBy)
	})

	bad := map[string]models.FeedArgs{
		"negative skip":     {Skip: ptr(-1)},
		"negative take":     {Take: ptr(-5)},
		"unknown field":     {OrderBy: []models.OrderClause{{Field: "votes", Direction: models.SortAsc}}},
		"unknown direction": {OrderBy: []models.OrderClause{{Field: models.OrderByURL, Direction: "up"}}},
	}
	for name, args := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := BuildFeedQuery(args)
			assert.ErrorIs(t, err, common.ErrInvalidArgument)
		})
	}
}

func TestFeedID(t *testing.T) {
	assert.Equal(t, "main-feed:{}", FeedID(models.FeedArgs{}))

	args := models.FeedArgs{
		Filter:  ptr("graphql"),
		Take:    ptr(1),
		OrderBy: []models.OrderClause{{Field: models.OrderByCreatedAt, Direction: models.SortDesc}},
	}
	assert.Equal(t,
		`main-feed:{"filter":"graphql","take":1,"orderBy":[{"field":"createdAt","direction":"desc"}]}`,
		FeedID(args))
	assert.Equal(t, FeedID(args), FeedID(args))
	assert.NotEqual(t, FeedID(args), FeedID(models.FeedArgs{Filter: ptr("graphql")}))
}

// seedFeed posts the three links used across feed tests, oldest first.
func seedFeed(t *testing.T, e *testEnv) {
	t.Helper()
	ctx, _ := e.signup(t, "poster@x.io")
	for _, l := range []struct{ desc, url string }{
		{"GraphQL intro", "https://graphql.org"},
		{"Prisma docs", "https://prisma.io"},
		{"GraphQL tutorial", "https://howtographql.com"},
	} {
		_, err := e.svc.Post(ctx, l.desc, l.url)
		require.NoError(t, err)
	}
}

func TestFeed_FilterTakeOrder(t *testing.T) {
	e := newTestEnv(t, Options{})
	seedFeed(t, e)
	ctx := context.Background()

	args := models.FeedArgs{
		Filter:  ptr("GraphQL"),
		Take:    ptr(1),
		OrderBy: []models.OrderClause{{Field: models.OrderByCreatedAt, Direction: models.SortDesc}},
	}
	feed, err := e.svc.Feed(ctx, args)
	require.NoError(t, err)
	require.Len(t, feed.Links, 1)
	assert.Equal(t, "GraphQL tutorial", feed.Links[0].Description)
	assert.Equal(t, 2, feed.Count)
	assert.Equal(t, FeedID(args), feed.ID)

	args.Skip = ptr(1)
	feed, err = e.svc.Feed(ctx, args)
	require.NoError(t, err)
	require.Len(t, feed.Links, 1)
	assert.Equal(t, "GraphQL intro", feed.Links[0].Description)
	assert.Equal(t, 2, feed.Count)
}

func TestFeed_NoArgsReturnsEverything(t *testing.T) {
	e := newTestEnv(t, Options{})
	seedFeed(t, e)

	feed, err := e.svc.Feed(context.Background(), models.FeedArgs{})
	require.NoError(t, err)
	assert.Len(t, feed.Links, 3)
	assert.Equal(t, 3, feed.Count)
	assert.Equal(t, "main-feed:{}", feed.ID)
}

func TestFeed_SkipPastEnd(t *testing.T) {
	e := newTestEnv(t, Options{})
	seedFeed(t, e)

	feed, err := e.svc.Feed(context.Background(), models.FeedArgs{Skip: ptr(10)})
	require.NoError(t, err)
	assert.Empty(t, feed.Links)
	assert.Equal(t, 3, feed.Count)
}

func TestFeed_ServesFromCacheUntilMutation(t *testing.T) {
	e := newTestEnv(t, Options{})
	seedFeed(t, e)
	ctx := context.Background()
	invalidatedBySeed := e.cache.invalidated

	_, err := e.svc.Feed(ctx, models.FeedArgs{})
	require.NoError(t, err)
	_, err = e.svc.Feed(ctx, models.FeedArgs{})
	require.NoError(t, err)
	assert.Equal(t, 1, e.store.findCalls)

	authed, _ := e.signup(t, "second@x.io")
	_, err = e.svc.Post(authed, "Go blog", "https://go.dev/blog")
	require.NoError(t, err)
	assert.Equal(t, invalidatedBySeed+1, e.cache.invalidated)

	feed, err := e.svc.Feed(ctx, models.FeedArgs{})
	require.NoError(t, err)
	assert.Equal(t, 2, e.store.findCalls)
	assert.Equal(t, 4, feed.Count)
}

func TestFeed_CacheReadFailureFallsThrough(t *testing.T) {
	st := newStore()
	c := newCountingCache()
	c.getErr = errStoreDown
	svc := NewFeedService(fakeLinks{st}, c, logger.Nop())

	feed, err := svc.Feed(context.Background(), models.FeedArgs{})
	require.NoError(t, err)
	assert.Equal(t, 0, feed.Count)
	assert.Equal(t, 1, st.findCalls)
}

func TestFeed_StoreError(t *testing.T) {
	st := newStore()
	st.failWith = errStoreDown
	svc := NewFeedService(fakeLinks{st}, nil, nil)

	_, err := svc.Feed(context.Background(), models.FeedArgs{})
	assert.ErrorIs(t, err, errStoreDown)
}

func TestFeed_InvalidArgsSkipStore(t *testing.T) {
	st := newStore()
	svc := NewFeedService(fakeLinks{st}, nil, nil)

	_, err := svc.Feed(context.Background(), models.FeedArgs{Take: ptr(-1)})
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
	assert.Zero(t, st.findCalls)
}

// racingLinks runs onFind once, after the store read and before the caller
// gets the rows back.
type racingLinks struct {
	fakeLinks
	once   sync.Once
	onFind func()
}

func (r *racingLinks) Find(ctx context.Context, q models.FeedQuery) ([]models.Link, error) {
	links, err := r.fakeLinks.Find(ctx, q)
	r.once.Do(r.onFind)
	return links, err
}

func TestFeed_PostDuringReadIsNotHiddenByCache(t *testing.T) {
	st := newStore()
	links := &racingLinks{fakeLinks: fakeLinks{st}}
	repos := &repository.Repository{Users: fakeUsers{st}, Links: links, Votes: fakeVotes{st}}
	svc := NewService(repos, newTestCredentials(t), cache.NewMemory(time.Minute), Options{}, logger.Nop())

	p, err := svc.Signup(context.Background(), "a@x.io", "pw", "Ann")
	require.NoError(t, err)
	authed := WithUserID(context.Background(), p.User.ID)
	links.onFind = func() {
		_, err := svc.Post(authed, "Go", "https://go.dev")
		assert.NoError(t, err)
	}

	first, err := svc.Feed(context.Background(), models.FeedArgs{})
	require.NoError(t, err)
	assert.Empty(t, first.Links)

	second, err := svc.Feed(context.Background(), models.FeedArgs{})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Count)
	assert.Len(t, second.Links, 1)
}
