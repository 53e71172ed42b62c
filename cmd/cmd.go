// Package cmd implements the burnit command
//
// It is in a sub package so it's internals can be re-used elsewhere
package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/pdiomede/BurnIt/cmd/devserver"
	"github.com/pdiomede/BurnIt/fs"
	"github.com/pdiomede/BurnIt/fs/config/configflags"
	fslog "github.com/pdiomede/BurnIt/fs/log"
	"github.com/pdiomede/BurnIt/lib/atexit"
	"github.com/pdiomede/BurnIt/lib/exitcode"
	libhttp "github.com/pdiomede/BurnIt/lib/http"
	"github.com/pdiomede/BurnIt/lib/systemd"
	"github.com/pdiomede/BurnIt/lib/terminal"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Errors
var (
	errorNotEnoughArguments = errors.New("not enough arguments")
	errorTooManyArguments   = errors.New("too many arguments")
)

// portInUseError is returned when the port asked for is already bound
type portInUseError struct {
	port int
	err  error
}

func (e portInUseError) Error() string {
	return fmt.Sprintf("port %d is already in use: %v", e.port, e.err)
}

func (e portInUseError) Unwrap() error {
	return e.err
}

// Root is the main burnit command
var Root = newRootCommand()

func newRootCommand() *cobra.Command {
	opt := devserver.DefaultOpt
	command := &cobra.Command{
		Use:   "burnit [port]",
		Short: "Serve the BurnIt web app from the current directory for local development.",
		Long: `
Serves the files in the current directory over HTTP on all interfaces
so the web app can be opened in a browser during development.

The port defaults to 8000 and can be given as the only argument. An
argument which isn't a port number is ignored with a warning.

Every response carries permissive CORS headers:

    Access-Control-Allow-Origin: *
    Access-Control-Allow-Methods: GET, POST, OPTIONS
    Access-Control-Allow-Headers: Content-Type

The serving URL is opened in the default browser unless
--no-open-browser is given. Press Ctrl+C to stop the server.
`,
		Version:           fs.Version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
		Run: func(command *cobra.Command, args []string) {
			CheckArgs(0, 1, command, args)
			opt := opt
			opt.Port = parsePort(args)
			Run(command, func() error {
				return serve(context.Background(), opt)
			})
		},
	}
	flagSet := command.Flags()
	configflags.AddFlags(fs.GetConfig(context.Background()), flagSet)
	devserver.AddFlags(flagSet, &opt)
	flagSet.BoolP("version", "V", false, "Print the version number")
	return command
}

// initConfig is run by cobra after initialising the flags
func initConfig(command *cobra.Command, args []string) error {
	ctx := context.Background()
	ci := fs.GetConfig(ctx)

	// Finish parsing any command line flags
	if err := configflags.SetFlags(ci, command.Flags()); err != nil {
		return err
	}

	// Start the logger
	fslog.InitLogging(ctx)

	// Write the args for debug purposes
	fs.Debugf("burnit", "Version %q starting with parameters %q", fs.Version, os.Args)
	return nil
}

// parsePort returns the port from the optional argument
//
// Anything which isn't a TCP port number is reported and replaced by
// the default port.
func parsePort(args []string) int {
	if len(args) == 0 {
		return devserver.DefaultPort
	}
	port, err := strconv.ParseUint(args[0], 10, 16)
	if err != nil {
		fs.Logf(nil, "Invalid port number. Using default port %d", devserver.DefaultPort)
		return devserver.DefaultPort
	}
	return int(port)
}

// serve runs the dev server until it is interrupted or fails
func serve(ctx context.Context, opt devserver.Options) error {
	// Registered first so it runs last, after the server has shut down
	farewell := atexit.Register(func() {
		terminal.Printf("\n👋 Server stopped\n")
	})

	s, err := devserver.Start(ctx, opt)
	if err != nil {
		atexit.Unregister(farewell)
		if libhttp.IsAddrInUse(err) {
			return portInUseError{port: opt.Port, err: err}
		}
		return err
	}

	stopping := systemd.Notify()
	err = s.Wait()
	stopping()
	if err != nil {
		atexit.Unregister(farewell)
	}
	return err
}

// Run the function and exit with the status its error maps to
func Run(command *cobra.Command, f func() error) {
	err := f()
	if err != nil {
		reportError(command, err)
	}
	resolveExitCode(err)
}

// reportError tells the user why the server stopped
func reportError(command *cobra.Command, err error) {
	fs.Debugf(nil, "Failed to %s: %+v", command.Name(), err)
	var inUse portInUseError
	if errors.As(err, &inUse) {
		terminal.Printf("%s\n", terminal.Colour(terminal.RedFg, fmt.Sprintf("❌ Port %d is already in use. Try a different port:", inUse.port)))
		terminal.Printf("   %s\n", terminal.Colour(terminal.YellowFg, fmt.Sprintf("%s %d", command.CommandPath(), inUse.port+1)))
		return
	}
	terminal.Printf("%s\n", terminal.Colour(terminal.RedFg, fmt.Sprintf("❌ Error: %v", err)))
}

// CheckArgs checks there are enough arguments and prints a message if not
func CheckArgs(MinArgs, MaxArgs int, cmd *cobra.Command, args []string) {
	if len(args) < MinArgs {
		_ = cmd.Usage()
		_, _ = fmt.Fprintf(os.Stderr, "Command %s needs %d arguments minimum: you provided %d non flag arguments: %q\n", cmd.Name(), MinArgs, len(args), args)
		resolveExitCode(errorNotEnoughArguments)
	} else if len(args) > MaxArgs {
		_ = cmd.Usage()
		_, _ = fmt.Fprintf(os.Stderr, "Command %s needs %d arguments maximum: you provided %d non flag arguments: %q\n", cmd.Name(), MaxArgs, len(args), args)
		resolveExitCode(errorTooManyArguments)
	}
}

// exitCode returns the exit status for err
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, errorNotEnoughArguments), errors.Is(err, errorTooManyArguments):
		return exitcode.UsageError
	default:
		return exitcode.Failure
	}
}

// resolveExitCode runs the exit handlers and exits with the status
// for err
func resolveExitCode(err error) {
	atexit.Run()
	os.Exit(exitCode(err))
}

// Main runs the server interpreting flags and the port out of os.Args
func Main() {
	if err := Root.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		_ = Root.Usage()
		resolveExitCode(err)
	}
}
