//go:build linux || darwin

package ui

import (
	"context"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"github.com/svanichkin/memwatch/logs"
	"github.com/svanichkin/memwatch/watch"
)

// WatchResize pushes a Relayout command for every SIGWINCH until ctx ends.
func WatchResize(ctx context.Context, q *watch.Queue) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGWINCH)
	go func() {
		defer signal.Stop(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ch:
				logs.LogV("[term] window resized")
				q.Push(watch.Cmd(watch.Relayout))
			}
		}
	}()
}
