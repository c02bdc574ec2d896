package v1

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chatstore/internal/domain/query"
	"chatstore/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
	log      zerolog.Logger
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(handlerProvider *handlers.Provider, log zerolog.Logger) *Routes {
	return &Routes{
		handlers: handlerProvider,
		log:      log,
	}
}

// Register attaches all v1 routes under /v1 prefix.
func (r *Routes) Register(engine *gin.Engine) {
	group := engine.Group("/v1")
	registerThreadRoutes(group, r.handlers.Thread, r.log)
	registerItemRoutes(group, r.handlers.Item, r.log)
	registerAttachmentRoutes(group, r.handlers.Attachment, r.log)
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func parsePagination(c *gin.Context) (query.Pagination, error) {
	p := query.Pagination{
		After: c.Query("after"),
		Order: query.ParseOrder(c.Query("order")),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return p, fmt.Errorf("limit must be a positive integer")
		}
		p.Limit = limit
	}
	return p, nil
}
