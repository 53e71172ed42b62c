// Package log provides logging for the server
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pdiomede/BurnIt/fs"
	"github.com/sirupsen/logrus"
)

// InitLogging starts the logging as per the command line flags
//
// Records go to stderr so they don't mix with the messages printed
// for the user on stdout.
func InitLogging(ctx context.Context) {
	setup(fs.GetConfig(ctx), os.Stderr)
}

// setup points the logrus standard logger at out with the format and
// level from ci.
func setup(ci *fs.ConfigInfo, out io.Writer) {
	logrus.SetOutput(out)
	if ci.UseJSONLog {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&textFormatter{})
	}
	logrus.SetLevel(ci.LogLevel.Logrus())
}

// textFormatter writes records as
//
//	2006/01/02 15:04:05 NOTICE: message
type textFormatter struct{}

// Format implements logrus.Formatter
func (textFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return []byte(fmt.Sprintf("%s %-6s: %s\n",
		entry.Time.Format("2006/01/02 15:04:05"),
		fs.LevelName(entry),
		entry.Message)), nil
}

// Trace debugs the entry and exit of a step
//
// It is designed to be used in a defer statement, so it returns a
// function that logs the exit.
func Trace(o interface{}, format string, a ...interface{}) func() {
	if fs.GetConfig(context.Background()).LogLevel < fs.LogLevelDebug {
		return func() {}
	}
	start := time.Now()
	what := fmt.Sprintf(format, a...)
	fs.Debugf(o, "%s: start", what)
	return func() {
		fs.Debugf(o, "%s: done in %v", what, time.Since(start))
	}
}
