package http

import (
	"os"
	"time"

	"github.com/cloudcopper/levelpanel/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	slogchi "github.com/samber/slog-chi"
)

// NewRouter returns router with common middlewares.
// The zero timeout disables request timeout.
func NewRouter(log ports.Logger, timeout time.Duration) ports.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(slogchi.New(log))
	r.Use(middleware.Recoverer)
	if os.Getenv("GO_ENV") != "development" && timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}

	return r
}
