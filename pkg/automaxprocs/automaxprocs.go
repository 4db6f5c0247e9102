// Package automaxprocs sets GOMAXPROCS from the container CPU quota and logs the change.
package automaxprocs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/epoch-schedule/pkg/logger"
	"github.com/gaze-network/epoch-schedule/pkg/logger/slogx"
	"go.uber.org/automaxprocs/maxprocs"
)

var (
	mu   sync.Mutex
	undo func()

	// initial is GOMAXPROCS at program start.
	initial = Current()

	// value is GOMAXPROCS after Init, -1 before.
	value = -1
)

// Init sets GOMAXPROCS once per process. Later calls only return the value already set.
func Init(ctx context.Context) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	if value > 0 {
		return value, nil
	}

	log := logger.FromContext(ctx).With(
		slogx.String("package", "automaxprocs"),
		slogx.Int("prev_maxprocs", initial),
	)
	printf := func(format string, v ...any) {
		attrs := make([]slog.Attr, 0, 1)
		// maxprocs passes the new value except when undoing
		if val, ok := utils.Optional(v); ok {
			if _, exists := os.LookupEnv("GOMAXPROCS"); exists {
				val = Current()
			}
			if n, ok := val.(int); ok {
				attrs = append(attrs, slogx.Int("set_maxprocs", n))
			}
		}
		log.LogAttrs(ctx, slog.LevelDebug, fmt.Sprintf(format, v...), attrs...)
	}

	revert, err := maxprocs.Set(maxprocs.Logger(printf), maxprocs.Min(1))
	if err != nil {
		return Current(), errors.WithStack(err)
	}
	undo = revert
	value = Current()
	return value, nil
}

// Undo restores GOMAXPROCS to its value before Init and returns it.
func Undo() int {
	mu.Lock()
	defer mu.Unlock()
	value = -1
	if undo != nil {
		undo()
		undo = nil
		return Current()
	}
	runtime.GOMAXPROCS(initial)
	return initial
}

// Current returns the current value of GOMAXPROCS.
func Current() int {
	return runtime.GOMAXPROCS(0)
}
