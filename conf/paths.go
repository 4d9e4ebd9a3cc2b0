package conf

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	appDirName     = "memwatch"
	configFileName = "config.yaml"
	logFileName    = "memwatch.log"
)

// resolveConfigPath normalizes the config file path, expanding "~" and
// converting it to an absolute path. When cfg is empty it defaults to
// $XDG_CONFIG_HOME/memwatch/config.yaml (or ~/.config/memwatch/config.yaml).
// A bare name without an extension (e.g. "work") is a profile inside the
// default config directory ("work.yaml").
func resolveConfigPath(cfg string) (string, error) {
	raw := strings.TrimSpace(cfg)

	switch {
	case raw == "":
		if dir, err := DefaultConfigDir(); err == nil {
			raw = filepath.Join(dir, configFileName)
		} else {
			raw = configFileName
		}
	case filepath.Base(raw) == raw && filepath.Ext(raw) == "":
		if dir, err := DefaultConfigDir(); err == nil {
			raw = filepath.Join(dir, raw+".yaml")
		} else {
			raw = raw + ".yaml"
		}
	}
	return expandPath(raw)
}

// expandPath resolves a leading "~/" and makes the path absolute.
func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		h, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(h, path[2:])
		}
	}
	return filepath.Abs(path)
}

// DefaultConfigDir is the memwatch directory under the user config dir.
func DefaultConfigDir() (string, error) {
	d, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, appDirName), nil
}

// LogPath returns the log file location next to the config file.
func (o *Options) LogPath() string {
	if o.ConfigPath != "" {
		return filepath.Join(filepath.Dir(o.ConfigPath), logFileName)
	}
	if dir, err := DefaultConfigDir(); err == nil {
		return filepath.Join(dir, logFileName)
	}
	return logFileName
}
