package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options controls logger construction
type Options struct {
	Level   string
	Format  string // "json" or "text"
	Service string
	Output  io.Writer
}

// New builds a logrus logger. Unknown levels fall back to info.
func New(opts Options) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.EqualFold(opts.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if opts.Output != nil {
		logger.SetOutput(opts.Output)
	}

	if opts.Service != "" {
		logger.AddHook(&serviceHook{service: opts.Service})
	}

	return logger
}

// serviceHook stamps every entry with the service name
type serviceHook struct {
	service string
}

func (h *serviceHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *serviceHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["service"]; !ok {
		entry.Data["service"] = h.service
	}
	return nil
}
