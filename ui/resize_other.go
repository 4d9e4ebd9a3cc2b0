//go:build !linux && !darwin

package ui

import (
	"context"

	"github.com/svanichkin/memwatch/watch"
)

// WatchResize is a no-op: no SIGWINCH on this platform.
func WatchResize(ctx context.Context, q *watch.Queue) {}
