package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chatstore/internal/interfaces/httpserver/handlers"
	v1 "chatstore/internal/interfaces/httpserver/routes/v1"
)

// Provider wires all versioned route registrars.
type Provider struct {
	v1 *v1.Routes
}

// NewProvider constructs the route provider.
func NewProvider(handlerProvider *handlers.Provider, log zerolog.Logger) *Provider {
	return &Provider{
		v1: v1.NewRoutes(handlerProvider, log),
	}
}

// Register attaches all API routes to the engine.
func (p *Provider) Register(engine *gin.Engine) {
	p.v1.Register(engine)
}
