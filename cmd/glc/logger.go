package main

import (
	"fmt"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/golives/glc/internal/config"
)

// setupSessionLogger creates a rotating log file for the import session and
// returns a logf function plus a closer. When no log file is configured,
// logf is a no-op.
func setupSessionLogger() (func(string, ...interface{}), func()) {
	logPath := config.GetString("log-file")
	if logPath == "" {
		return func(string, ...interface{}) {}, func() {}
	}

	logF := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   true,
	}

	logf := func(format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)
		timestamp := time.Now().Format("2006-01-02 15:04:05")
		_, _ = fmt.Fprintf(logF, "[%s] %s\n", timestamp, msg)
	}
	return logf, func() { _ = logF.Close() }
}
