package main

import (
	"io"
	"time"

	log "github.com/sirupsen/logrus"
)

// newLogger returns a logger writing to w. Only warnings are shown unless
// debug is set.
func newLogger(w io.Writer, format string, debug bool) *log.Logger {
	logger := log.New()
	logger.SetOutput(w)

	if format == "json" {
		logger.SetFormatter(&log.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	} else {
		logger.SetFormatter(&log.TextFormatter{
			DisableColors:    true,
			DisableTimestamp: true,
		})
	}

	logger.SetLevel(log.WarnLevel)
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
