package service

import (
	"context"
	"encoding/json"
	"fmt"

	"linkfeed/internal/cache"
	"linkfeed/internal/common"
	"linkfeed/internal/logger"
	"linkfeed/internal/models"
	"linkfeed/internal/repository"

	"golang.org/x/sync/errgroup"
)

// FeedIDPrefix starts every feed identifier.
const FeedIDPrefix = "main-feed:"

// FeedService answers feed queries, consulting the feed cache first.
type FeedService struct {
	links repository.Links
	cache cache.FeedCache
	log   *logger.Logger
}

func NewFeedService(links repository.Links, feeds cache.FeedCache, log *logger.Logger) *FeedService {
	if feeds == nil {
		feeds = cache.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &FeedService{links: links, cache: feeds, log: log}
}

// Feed returns the requested page together with the total count of links
// matching the filter. The page and the count are read concurrently.
func (s *FeedService) Feed(ctx context.Context, args models.FeedArgs) (models.Feed, error) {
	q, err := BuildFeedQuery(args)
	if err != nil {
		return models.Feed{}, err
	}
	id := FeedID(args)

	if cached, ok, err := s.cache.Get(ctx, id); err != nil {
		s.log.Warnw("feed cache read failed", "id", id, "error", err)
	} else if ok {
		return cached, nil
	}
	// taken before the store read so Set can tell whether a mutation raced us
	gen, genErr := s.cache.Generation(ctx)
	if genErr != nil {
		s.log.Warnw("feed cache generation read failed", "id", id, "error", genErr)
	}

	var (
		links []models.Link
		count int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		links, err = s.links.Find(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		count, err = s.links.Count(gctx, q.Filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Feed{}, err
	}

	feed := models.Feed{Links: links, Count: count, ID: id}
	if genErr == nil {
		if err := s.cache.Set(ctx, id, gen, feed); err != nil {
			s.log.Warnw("feed cache write failed", "id", id, "error", err)
		}
	}
	return feed, nil
}

// BuildFeedQuery normalizes client arguments. Clauses without a direction are
// dropped; negative windows and unknown fields or directions are rejected.
func BuildFeedQuery(args models.FeedArgs) (models.FeedQuery, error) {
	var q models.FeedQuery
	if args.Filter != nil {
		q.Filter = *args.Filter
	}
	if args.Skip != nil {
		if *args.Skip < 0 {
			return q, fmt.Errorf("%w: skip must not be negative", common.ErrInvalidArgument)
		}
		q.Skip = *args.Skip
	}
	if args.Take != nil {
		if *args.Take < 0 {
			return q, fmt.Errorf("%w: take must not be negative", common.ErrInvalidArgument)
		}
		take := *args.Take
		q.Take = &take
	}
	for _, c := range args.OrderBy {
		switch c.Field {
		case models.OrderByDescription, models.OrderByURL, models.OrderByCreatedAt:
		default:
			return q, fmt.Errorf("%w: unknown order field %q", common.ErrInvalidArgument, c.Field)
		}
		switch c.Direction {
		case "":
			continue
		case models.SortAsc, models.SortDesc:
			q.OrderBy = append(q.OrderBy, c)
		default:
			return q, fmt.Errorf("%w: unknown sort direction %q", common.ErrInvalidArgument, c.Direction)
		}
	}
	return q, nil
}

// FeedID derives a stable identifier from the arguments as received.
// Identical arguments yield identical ids.
func FeedID(args models.FeedArgs) string {
	b, err := json.Marshal(args)
	if err != nil {
		// FeedArgs holds only strings, ints and slices of them.
		panic(fmt.Sprintf("marshal feed args: %v", err))
	}
	return FeedIDPrefix + string(b)
}
