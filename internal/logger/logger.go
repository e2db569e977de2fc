package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

func init() {
	Logger = logrus.New()
	Logger.SetOutput(os.Stdout)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// Info until config is loaded; LOG_LEVEL=debug overrides for early boot.
	Logger.SetLevel(logrus.InfoLevel)
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		if parsedLevel, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
			Logger.SetLevel(parsedLevel)
		}
	}
}

// WithComponent returns an entry tagged with the subsystem that is logging
// (cache, catalog-repo, invalidation, ...).
func WithComponent(component string) *logrus.Entry {
	return Logger.WithField("component", component)
}
