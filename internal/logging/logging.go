package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls the process-wide logger.
type Options struct {
	Level   string
	File    string
	Verbose bool
}

// Setup configures the standard logrus logger. Logs go to stderr, or to a
// rotating file when Options.File is set.
func Setup(opts Options) error {
	return Configure(log.StandardLogger(), opts)
}

// Configure applies opts to the given logger.
func Configure(logger *log.Logger, opts Options) error {
	level := ParseLevel(opts.Level)
	if opts.Verbose {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	out, err := output(opts.File)
	if err != nil {
		return err
	}
	logger.SetOutput(out)
	return nil
}

// ParseLevel maps a config level name to a logrus level. Unknown names fall
// back to info.
func ParseLevel(value string) log.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func output(file string) (io.Writer, error) {
	if file == "" {
		return os.Stderr, nil
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, err
	}
	return &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}, nil
}
