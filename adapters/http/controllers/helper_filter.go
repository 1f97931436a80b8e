package controllers

import (
	"net/http"
	"strconv"

	"github.com/cloudcopper/levelpanel/adapters/http/viewmodels"
)

// helperFilter returns the tag filter and hidden flag of the panel view
func helperFilter(r *http.Request) (filter string, hidden bool) {
	query := r.URL.Query()
	filter = query.Get("q")
	hidden, _ = strconv.ParseBool(query.Get("hidden"))
	return filter, hidden
}

// helperPanelURL returns panel URL keeping the view state.
// The URL is relative, so the panel works mounted under any prefix.
func helperPanelURL(filter string, hidden bool) string {
	return "./" + viewmodels.ViewQuery(filter, hidden)
}
