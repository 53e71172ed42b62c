package fs

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// LogLevel describes the server's logs.  These are a subset of the
// syslog log levels.
type LogLevel byte

// Log levels.  These are the syslog levels of which we only use a
// subset.
//
//    LOG_EMERG      system is unusable
//    LOG_ALERT      action must be taken immediately
//    LOG_CRIT       critical conditions
//    LOG_ERR        error conditions
//    LOG_WARNING    warning conditions
//    LOG_NOTICE     normal, but significant, condition
//    LOG_INFO       informational message
//    LOG_DEBUG      debug-level message
const (
	LogLevelEmergency LogLevel = iota
	LogLevelAlert
	LogLevelCritical
	LogLevelError // Error - can't be suppressed
	LogLevelWarning
	LogLevelNotice // Normal logging, -q suppresses
	LogLevelInfo   // Startup detail, needs -v
	LogLevelDebug  // Debug level, needs -vv
)

var logLevelToString = []string{
	LogLevelEmergency: "EMERGENCY",
	LogLevelAlert:     "ALERT",
	LogLevelCritical:  "CRITICAL",
	LogLevelError:     "ERROR",
	LogLevelWarning:   "WARNING",
	LogLevelNotice:    "NOTICE",
	LogLevelInfo:      "INFO",
	LogLevelDebug:     "DEBUG",
}

// String turns a LogLevel into a string
func (l LogLevel) String() string {
	if l >= LogLevel(len(logLevelToString)) {
		return fmt.Sprintf("LogLevel(%d)", l)
	}
	return logLevelToString[l]
}

// Set a LogLevel
func (l *LogLevel) Set(s string) error {
	for n, name := range logLevelToString {
		if s != "" && name == s {
			*l = LogLevel(n)
			return nil
		}
	}
	return errors.Errorf("Unknown log level %q", s)
}

// Type of the value
func (l *LogLevel) Type() string {
	return "string"
}

// Logrus returns the logrus level used to emit records at this level.
//
// logrus has no notice level so notices are emitted as warnings.
// Levels above error are emitted as errors.
func (l LogLevel) Logrus() logrus.Level {
	switch l {
	case LogLevelEmergency, LogLevelAlert, LogLevelCritical, LogLevelError:
		return logrus.ErrorLevel
	case LogLevelWarning, LogLevelNotice:
		return logrus.WarnLevel
	case LogLevelInfo:
		return logrus.InfoLevel
	}
	return logrus.DebugLevel
}

// LogPrintf produces a log record from the arguments passed in
//
// Records always go through the logrus standard logger which
// fs/log configures for text or JSON output.
func LogPrintf(level LogLevel, o interface{}, text string, args ...interface{}) {
	out := fmt.Sprintf(text, args...)
	fields := logrus.Fields{levelKey: level.String()}
	if o != nil {
		if GetConfig(context.TODO()).UseJSONLog {
			fields["object"] = fmt.Sprintf("%+v", o)
			fields["objectType"] = fmt.Sprintf("%T", o)
		} else {
			out = fmt.Sprintf("%v: %s", o, out)
		}
	}
	entry := logrus.WithFields(fields)
	switch level.Logrus() {
	case logrus.DebugLevel:
		entry.Debug(out)
	case logrus.InfoLevel:
		entry.Info(out)
	case logrus.WarnLevel:
		entry.Warn(out)
	default:
		entry.Error(out)
	}
}

// levelKey is the logrus field carrying the syslog style level name.
const levelKey = "level_name"

// LevelName returns the syslog style level name of a logrus entry
// written by LogPrintf.
func LevelName(entry *logrus.Entry) string {
	if name, ok := entry.Data[levelKey].(string); ok {
		return name
	}
	return entry.Level.String()
}

// LogLevelPrintf writes logs at the given level
func LogLevelPrintf(level LogLevel, o interface{}, text string, args ...interface{}) {
	if GetConfig(context.TODO()).LogLevel >= level {
		LogPrintf(level, o, text, args...)
	}
}

// Errorf writes error log output for this object.  It should always
// be seen by the user.
func Errorf(o interface{}, text string, args ...interface{}) {
	LogLevelPrintf(LogLevelError, o, text, args...)
}

// Logf writes log output for this object.  This should be
// considered to be Notice level logging.  It is the default level.
// Only use this for things the user should see.  The user can filter
// these out with the -q flag.
func Logf(o interface{}, text string, args ...interface{}) {
	LogLevelPrintf(LogLevelNotice, o, text, args...)
}

// Infof writes info for this object.  Use this level for things
// which should appear with the -v flag.
func Infof(o interface{}, text string, args ...interface{}) {
	LogLevelPrintf(LogLevelInfo, o, text, args...)
}

// Debugf writes debugging output for this object.  Use this for
// debug only.  The user must have to specify -vv to see this.
func Debugf(o interface{}, text string, args ...interface{}) {
	LogLevelPrintf(LogLevelDebug, o, text, args...)
}
