package levelpanel

import "embed"

//go:embed templates static
var appFS embed.FS
