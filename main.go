package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/svanichkin/memwatch/clock"
	"github.com/svanichkin/memwatch/codec"
	"github.com/svanichkin/memwatch/conf"
	"github.com/svanichkin/memwatch/device"
	"github.com/svanichkin/memwatch/logs"
	"github.com/svanichkin/memwatch/region"
	"github.com/svanichkin/memwatch/ui"
	"github.com/svanichkin/memwatch/watch"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "[memwatch] %v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	opts, err := conf.ParseCLI(os.Args[1:], os.Stderr)
	if errors.Is(err, conf.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if opts.ShowVersion {
		printVersion()
		return nil
	}

	logWriter, closeLog, logErr := logs.OpenSink(opts.LogPath())
	if closeLog != nil {
		defer closeLog()
	}
	logs.Setup(logWriter)
	if logErr != nil {
		logs.LogV("[memwatch] log file disabled (%v)", logErr)
	} else {
		logs.LogV("[memwatch] logs: %s", opts.LogPath())
	}

	profile, err := ui.ParseProfile(opts.Color)
	if err != nil {
		return err
	}
	palette := ui.DefaultPalette()
	if err := palette.Override(opts.Palette); err != nil {
		return err
	}

	view, err := region.New(opts.Address, opts.Display, opts.Size, opts.Columns)
	if err != nil {
		return err
	}
	session, err := watch.NewSession(opts.PID, view, opts.TrackerConfig())
	if err != nil {
		return err
	}
	session.Tracker.Keep = opts.Keep

	mem, err := device.NewProcessMemory(opts.PID)
	if err != nil {
		return err
	}
	if err := device.CheckInteractive(); err != nil {
		return err
	}

	appCtx, appCancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer appCancel()

	queue := watch.NewQueue(0)
	keyboard := ui.NewKeyboard(clock.Real(), watch.RepeatPolicy{
		Delay:    opts.RepeatDelay,
		Interval: opts.RepeatInterval,
	}, opts.HoldWindow)

	terminal := device.NewTerminal(os.Stdout)
	renderer := ui.NewRenderer(terminal, palette, profile, device.GetTermSize)

	driver, err := watch.NewDriver(watch.Options{
		Session:  session,
		Source:   mem,
		Renderer: renderer,
		Inputs:   []watch.CommandSource{queue, keyboard},
		Exporter: codec.NewExporter(opts.DumpDir),
		Clock:    clock.Real(),
		TickRate: opts.TickRate,
	})
	if err != nil {
		return err
	}
	log.Printf("[mem] watching pid %d: %v", opts.PID, session.Region)
	if err := driver.Start(appCtx); err != nil {
		return err
	}

	restoreTTY, err := keyboard.Start(appCtx, os.Stdin)
	if err != nil {
		return fmt.Errorf("keyboard: %w", err)
	}
	defer restoreTTY()

	ui.WatchResize(appCtx, queue)

	if err := terminal.Enter(); err != nil {
		return err
	}
	logs.Detach(logWriter)
	defer func() {
		_ = terminal.Exit()
		logs.Setup(logWriter)
	}()

	started := time.Now()
	err = driver.Run(appCtx)
	logs.LogV("[mem] ran for %s", time.Since(started).Round(time.Millisecond))
	return err
}

func appVersion() string {
	v := strings.TrimSpace(version)
	if v == "" {
		v = "dev"
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if v == "dev" {
			if ver := strings.TrimSpace(bi.Main.Version); ver != "" && ver != "(devel)" {
				return ver
			}
		}
		if v == "dev" {
			if derived := vcsVersion(bi); derived != "" {
				return derived
			}
		}
	}
	return v
}

func vcsVersion(bi *debug.BuildInfo) string {
	revision := buildInfoSetting(bi, "vcs.revision")
	if revision == "" {
		return ""
	}
	short := revision
	if len(short) > 12 {
		short = short[:12]
	}
	dirty := ""
	if buildInfoSetting(bi, "vcs.modified") == "true" {
		dirty = "+dirty"
	}
	if ts := buildInfoSetting(bi, "vcs.time"); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			return fmt.Sprintf("v0.0.0-%s-%s%s", t.UTC().Format("20060102150405"), short, dirty)
		}
	}
	return short + dirty
}

func buildInfoSetting(bi *debug.BuildInfo, key string) string {
	for _, setting := range bi.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}
	return ""
}

func printVersion() {
	fmt.Printf("memwatch %s\n", appVersion())
}
