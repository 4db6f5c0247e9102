package logger

import (
	"log/slog"

	"github.com/gaze-network/epoch-schedule/pkg/logger/slogx"
)

// Keys for log attributes.
const (
	LevelKey           = slog.LevelKey
	ErrorKey           = slogx.ErrorKey
	ErrorVerboseKey    = "error_verbose"
	ErrorStackTraceKey = "error_stacktrace"
)
