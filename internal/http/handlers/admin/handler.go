package admin

import "github.com/jagoron-news/internal/provider"

// Handler staff api handlers
type Handler struct {
	*provider.Container
}

// New creates the admin handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
