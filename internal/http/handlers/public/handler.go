package public

import "github.com/jagoron-news/internal/provider"

// Handler reader facing api
type Handler struct {
	*provider.Container
}

// New creates the public handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
