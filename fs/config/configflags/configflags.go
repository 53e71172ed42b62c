// Package configflags defines the flags used by the server.  It is
// decoupled into a separate package so it can be replaced.
package configflags

// Options set by command line flags
import (
	"github.com/pdiomede/BurnIt/fs"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

var (
	// these will get interpreted into fs.ConfigInfo via SetFlags() below
	verbose int
	quiet   bool
)

// AddFlags adds the non server specific flags to the command
func AddFlags(ci *fs.ConfigInfo, flagSet *pflag.FlagSet) {
	// NB defaults which aren't the zero for the type should be set in fs/config.go NewConfig
	flagSet.CountVarP(&verbose, "verbose", "v", "Print lots more stuff (repeat for more)")
	flagSet.BoolVarP(&quiet, "quiet", "q", false, "Print as little stuff as possible")
	flagSet.VarP(&ci.LogLevel, "log-level", "", "Log level DEBUG|INFO|NOTICE|ERROR")
	flagSet.BoolVarP(&ci.UseJSONLog, "use-json-log", "", ci.UseJSONLog, "Use json log format")
}

// SetFlags converts any flags into config which weren't straight forward
func SetFlags(ci *fs.ConfigInfo, flagSet *pflag.FlagSet) error {
	if verbose >= 2 {
		ci.LogLevel = fs.LogLevelDebug
	} else if verbose >= 1 {
		ci.LogLevel = fs.LogLevelInfo
	}
	if quiet {
		if verbose > 0 {
			return errors.New("can't set -v and -q")
		}
		ci.LogLevel = fs.LogLevelError
	}
	logLevelFlag := flagSet.Lookup("log-level")
	if logLevelFlag != nil && logLevelFlag.Changed {
		if verbose > 0 {
			return errors.New("can't set -v and --log-level")
		}
		if quiet {
			return errors.New("can't set -q and --log-level")
		}
	}
	return nil
}
