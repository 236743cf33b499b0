package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"linkfeed/internal/models"

	"github.com/gin-gonic/gin"
)

// PostLinkRequest is the payload for creating a link.
type PostLinkRequest struct {
	Description string `json:"description" binding:"required" example:"The Go blog"`
	URL         string `json:"url" binding:"required" example:"https://go.dev/blog"`
}

// UpdateLinkRequest changes only the fields that are present.
type UpdateLinkRequest struct {
	Description *string `json:"description,omitempty" example:"The Go blog"`
	URL         *string `json:"url,omitempty" example:"https://go.dev/blog"`
}

func (h *Handler) linkID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.badRequest(c, "bad_link_id", fmt.Errorf("invalid link id %q", c.Param("id")))
		return 0, false
	}
	return id, true
}

// @Summary      Get link
// @Tags         links
// @Produce      json
// @Param        id   path      int  true  "Link ID"
// @Success      200  {object}  models.LinkDetail
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/links/{id} [get]
func (h *Handler) getLink(c *gin.Context) {
	id, ok := h.linkID(c)
	if !ok {
		return
	}
	link, err := h.services.Link(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "link_read_failed", "link_id", id)
		return
	}
	if link == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("link %d not found", id)})
		return
	}
	c.JSON(http.StatusOK, link)
}

// @Summary      Post link
// @Tags         links
// @Accept       json
// @Produce      json
// @Param        body  body      PostLinkRequest  true  "Link"
// @Success      201   {object}  models.Link
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/links [post]
// @Security     BearerAuth
func (h *Handler) postLink(c *gin.Context) {
	var input PostLinkRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	link, err := h.services.Post(c.Request.Context(), input.Description, input.URL)
	if err != nil {
		h.respondError(c, err, "link_post_failed")
		return
	}
	c.JSON(http.StatusCreated, link)
}

// @Summary      Update link
// @Tags         links
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Link ID"
// @Param        body  body      UpdateLinkRequest  true  "Fields to change"
// @Success      200   {object}  models.Link
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/links/{id} [patch]
// @Security     BearerAuth
func (h *Handler) updateLink(c *gin.Context) {
	id, ok := h.linkID(c)
	if !ok {
		return
	}
	var input UpdateLinkRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	patch := models.LinkPatch{Description: input.Description, URL: input.URL}
	link, err := h.services.UpdateLink(c.Request.Context(), id, patch)
	if err != nil {
		h.respondError(c, err, "link_update_failed", "link_id", id)
		return
	}
	c.JSON(http.StatusOK, link)
}

// @Summary      Delete link
// @Tags         links
// @Produce      json
// @Param        id   path      int  true  "Link ID"
// @Success      200  {object}  models.Link
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/links/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteLink(c *gin.Context) {
	id, ok := h.linkID(c)
	if !ok {
		return
	}
	link, err := h.services.DeleteLink(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "link_delete_failed", "link_id", id)
		return
	}
	c.JSON(http.StatusOK, link)
}

// @Summary      Vote for link
// @Tags         links
// @Produce      json
// @Param        id   path      int  true  "Link ID"
// @Success      200  {object}  models.Vote
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/links/{id}/vote [post]
// @Security     BearerAuth
func (h *Handler) vote(c *gin.Context) {
	id, ok := h.linkID(c)
	if !ok {
		return
	}
	vote, err := h.services.Vote(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "vote_failed", "link_id", id)
		return
	}
	c.JSON(http.StatusOK, vote)
}
