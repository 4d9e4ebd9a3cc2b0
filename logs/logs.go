package logs

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/svanichkin/memwatch/conf"
)

// LogV prints a formatted log message only when verbose logging is enabled.
func LogV(format string, args ...interface{}) {
	if conf.Verbose {
		log.Printf(format, args...)
	}
}

// OpenSink opens (or creates) the log file at path for appending.
func OpenSink(path string) (io.Writer, func() error, error) {
	dir := filepath.Dir(path)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// Setup sends log output to stderr and, when given, the file sink.
func Setup(file io.Writer) {
	out := io.Writer(os.Stderr)
	if file != nil {
		out = io.MultiWriter(os.Stderr, file)
	}
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

// Detach stops writing to stderr once the terminal shows the hex view; only
// the file sink, if any, keeps receiving output.
func Detach(file io.Writer) {
	if file != nil {
		log.SetOutput(file)
		return
	}
	log.SetOutput(io.Discard)
}
