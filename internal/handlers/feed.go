package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"linkfeed/internal/models"

	"github.com/gin-gonic/gin"
)

// @Summary      Feed
// @Description  Filtered, paginated and ordered links plus the filtered total.
// @Description  orderBy is field[:asc|desc] and may repeat; a field without a direction is ignored.
// @Tags         links
// @Produce      json
// @Param        filter   query     string  false  "Substring of description or url"
// @Param        skip     query     int     false  "Links to skip"
// @Param        take     query     int     false  "Maximum links to return"
// @Param        orderBy  query     []string  false  "description|url|createdAt with :asc or :desc"  collectionFormat(multi)
// @Success      200      {object}  models.Feed
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Router       /api/v1/feed [get]
func (h *Handler) feed(c *gin.Context) {
	args, err := parseFeedArgs(c)
	if err != nil {
		h.badRequest(c, "feed_bad_query", err)
		return
	}

	feed, err := h.services.Feed(c.Request.Context(), args)
	if err != nil {
		h.respondError(c, err, "feed_query_failed")
		return
	}
	c.JSON(http.StatusOK, feed)
}

// parseFeedArgs keeps absent parameters nil so the feed id reflects exactly
// what the client sent.
func parseFeedArgs(c *gin.Context) (models.FeedArgs, error) {
	var args models.FeedArgs
	if filter, ok := c.GetQuery("filter"); ok {
		args.Filter = &filter
	}
	for _, p := range []struct {
		name string
		dst  **int
	}{{"skip", &args.Skip}, {"take", &args.Take}} {
		raw, ok := c.GetQuery(p.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return args, fmt.Errorf("%s must be an integer", p.name)
		}
		*p.dst = &n
	}
	for _, raw := range c.QueryArray("orderBy") {
		field, dir, _ := strings.Cut(raw, ":")
		args.OrderBy = append(args.OrderBy, models.OrderClause{
			Field:     models.OrderField(field),
			Direction: models.SortDirection(strings.ToLower(dir)),
		})
	}
	return args, nil
}
