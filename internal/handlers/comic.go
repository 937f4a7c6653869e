package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"eduforge/api/internal/httperr"
	"eduforge/api/internal/middleware"
	"eduforge/api/internal/repository"
	"eduforge/api/internal/upstream"
)

type streamComicRequest struct {
	Instructions string `json:"instructions"`
	GradeLevel   string `json:"gradeLevel"`
	NumPanels    int    `json:"numPanels"`
}

// POST /api/v1/comics/stream
//
// Relays the generation service's event stream untouched. Stream-start
// failures are the one place upstream error text goes back verbatim.
func (h HandlerSet) StreamComic(c *gin.Context) error {
	var req streamComicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return httperr.BadRequest("comic_stream", "invalid request body")
	}

	resp, err := h.upstream.StartComicStream(c.Request.Context(), upstream.ComicStreamRequest{
		Instructions: req.Instructions,
		GradeLevel:   req.GradeLevel,
		NumPanels:    req.NumPanels,
	})
	if err != nil {
		return httperr.Upstream("comic_stream", err)
	}

	if resp.StatusCode != http.StatusOK || resp.Body == nil {
		errText := readErrorText(resp.Body)
		if resp.Body != nil {
			resp.Body.Close()
		}
		h.log.Error().Int("upstream_status", resp.StatusCode).Msg("comic stream failed to establish")
		c.String(http.StatusInternalServerError, errText)
		return nil
	}

	relayEventStream(c, resp, false)
	return nil
}

// GET /api/v1/comics/:id
func (h HandlerSet) GetComic(c *gin.Context) error {
	id := c.Param("id")
	if id == "" {
		return httperr.BadRequest("get_comic", "missing comic id")
	}

	comic, err := h.comics.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrComicNotFound) {
			return httperr.NotFound("get_comic", "comic not found")
		}
		return httperr.Internal("get_comic", err)
	}

	c.JSON(http.StatusOK, gin.H{"comic": comic})
	return nil
}

// GET /api/v1/comics
func (h HandlerSet) ListComics(c *gin.Context) error {
	subject := middleware.Subject(c)
	if subject == "" {
		return httperr.Unauthorized("list_comics")
	}

	limit, offset := pagination(c)
	comics, err := h.comics.ListByOwner(c.Request.Context(), subject, limit, offset)
	if err != nil {
		return httperr.Internal("list_comics", err)
	}

	c.JSON(http.StatusOK, gin.H{"comics": comics})
	return nil
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = 50
	offset = 0

	if perPage := c.Query("perPage"); perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}
	if page := c.Query("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 1 {
			offset = (v - 1) * limit
		}
	}
	return limit, offset
}
