package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogging builds the process-wide JSON logger. The level comes from
// LOG_LEVEL (any name logrus.ParseLevel accepts); unset or unparsable
// values fall back to info so a typo never silences the service.
func SetupLogging() *logrus.Logger {
	level := logrus.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := logrus.ParseLevel(raw); err == nil {
			level = parsed
		}
	}

	logger := logrus.Logger{
		Formatter: &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		},
		Out:   os.Stdout,
		Level: level,
	}

	return &logger
}
