package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/hyperifyio/gopages/internal/aggregate"
	"github.com/hyperifyio/gopages/internal/metrics"
)

// Searcher runs one query. *pipeline.Pipeline implements it.
type Searcher interface {
	Run(ctx context.Context, query string) ([]aggregate.Page, error)
}

type Handler struct {
	searcher Searcher
}

func NewHandler(s Searcher) *Handler {
	return &Handler{searcher: s}
}

// Search serves GET /search?query=...
func (h *Handler) Search(c *gin.Context) {
	ctx := c.Request.Context()
	pages, err := h.searcher.Run(ctx, c.Query("query"))
	if err != nil {
		code, env := Failure(err)
		if code >= 500 {
			zerolog.Ctx(ctx).Error().Err(err).Msg("search failed")
			_ = c.Error(err)
		}
		metrics.RecordRequest(env.Status)
		c.JSON(code, env)
		return
	}
	code, env := Success(pages)
	metrics.RecordRequest(env.Status)
	c.JSON(code, env)
}
