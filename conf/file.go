package conf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML config file. Every field is optional; command line
// flags win over file values.
type fileConfig struct {
	Columns   *int              `yaml:"columns"`
	Size      *int              `yaml:"size"`
	Keep      *bool             `yaml:"keep"`
	FadeTicks *int              `yaml:"fade_ticks"`
	RestTicks *int              `yaml:"rest_ticks"`
	TickRate  *int              `yaml:"tick_rate"`
	Repeat    repeatConfig      `yaml:"repeat"`
	Color     string            `yaml:"color"`
	Palette   map[string]string `yaml:"palette"`
	DumpDir   string            `yaml:"dump_dir"`
	Verbose   *bool             `yaml:"verbose"`
}

type repeatConfig struct {
	Delay    *int           `yaml:"delay"`
	Interval *int           `yaml:"interval"`
	Hold     *time.Duration `yaml:"hold"`
}

// loadFile reads and strictly decodes the config file. An empty file is an
// empty config.
func loadFile(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &fc, nil
}

// apply copies file values into o, skipping any whose flag was given on the
// command line.
func (fc *fileConfig) apply(o *Options, changed func(flag string) bool) error {
	setInt := func(flag string, src *int, dst *int) {
		if src != nil && !changed(flag) {
			*dst = *src
		}
	}
	setInt("columns", fc.Columns, &o.Columns)
	setInt("size", fc.Size, &o.Size)
	setInt("fade", fc.FadeTicks, &o.FadeTicks)
	setInt("rest", fc.RestTicks, &o.RestTicks)
	setInt("rate", fc.TickRate, &o.TickRate)
	if fc.Keep != nil && !changed("keep") {
		o.Keep = *fc.Keep
	}
	if fc.Verbose != nil && !changed("verbose") {
		o.Verbose = *fc.Verbose
	}
	if fc.Color != "" && !changed("color") {
		o.Color = fc.Color
	}
	if fc.DumpDir != "" && !changed("dump-dir") {
		dir, err := expandPath(fc.DumpDir)
		if err != nil {
			return fmt.Errorf("dump_dir: %w", err)
		}
		o.DumpDir = dir
	}
	if fc.Repeat.Delay != nil {
		o.RepeatDelay = *fc.Repeat.Delay
	}
	if fc.Repeat.Interval != nil {
		o.RepeatInterval = *fc.Repeat.Interval
	}
	if fc.Repeat.Hold != nil {
		o.HoldWindow = *fc.Repeat.Hold
	}
	if len(fc.Palette) > 0 {
		o.Palette = make(map[string]string, len(fc.Palette))
		for k, v := range fc.Palette {
			o.Palette[k] = v
		}
	}
	return nil
}
