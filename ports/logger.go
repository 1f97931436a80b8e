package ports

import "log/slog"

type Logger = *slog.Logger
