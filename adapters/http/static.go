package http

import (
	"io/fs"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// FileServer returns handler serving files of the fs
func FileServer(f fs.FS) http.Handler {
	return http.FileServer(http.FS(f))
}

// MetricsHandler returns prometheus metrics handler
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
