package cmd

import (
	"bytes"
	"context"
	"net"
	"strconv"
	"testing"

	colorable "github.com/mattn/go-colorable"
	"github.com/pdiomede/BurnIt/cmd/devserver"
	"github.com/pdiomede/BurnIt/fs"
	"github.com/pdiomede/BurnIt/lib/terminal"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLog points the logrus standard logger at a buffer for the
// duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	std := logrus.StandardLogger()
	oldOut, oldFormatter, oldLevel := std.Out, std.Formatter, std.GetLevel()
	logrus.SetOutput(&buf)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	logrus.SetLevel(logrus.DebugLevel)
	t.Cleanup(func() {
		logrus.SetOutput(oldOut)
		logrus.SetFormatter(oldFormatter)
		logrus.SetLevel(oldLevel)
	})
	return &buf
}

// captureTerminal sends the terminal output to a buffer with the
// colour codes stripped.
func captureTerminal(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	terminal.Start()
	oldOut := terminal.Out
	terminal.Out = colorable.NewNonColorable(&buf)
	t.Cleanup(func() { terminal.Out = oldOut })
	return &buf
}

func TestParsePort(t *testing.T) {
	for _, test := range []struct {
		args    []string
		want    int
		warning bool
	}{
		{nil, 8000, false},
		{[]string{"3000"}, 3000, false},
		{[]string{"0"}, 0, false},
		{[]string{"65535"}, 65535, false},
		{[]string{"abc"}, 8000, true},
		{[]string{"-1"}, 8000, true},
		{[]string{"65536"}, 8000, true},
		{[]string{"80.5"}, 8000, true},
		{[]string{""}, 8000, true},
	} {
		buf := captureLog(t)
		got := parsePort(test.args)
		assert.Equal(t, test.want, got, test.args)
		if test.warning {
			assert.Contains(t, buf.String(), "Invalid port number. Using default port 8000", test.args)
		} else {
			assert.Empty(t, buf.String(), test.args)
		}
	}
}

func TestPortInUseError(t *testing.T) {
	inner := errors.New("bind: address already in use")
	err := portInUseError{port: 3000, err: inner}
	assert.Equal(t, "port 3000 is already in use: bind: address already in use", err.Error())
	assert.True(t, errors.Is(err, inner))

	var got portInUseError
	require.True(t, errors.As(errors.Wrap(err, "start"), &got))
	assert.Equal(t, 3000, got.port)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(errorTooManyArguments))
	assert.Equal(t, 1, exitCode(errorNotEnoughArguments))
	assert.Equal(t, 1, exitCode(portInUseError{port: 8000, err: errors.New("in use")}))
	assert.Equal(t, 1, exitCode(errors.New("potato")))
}

func TestReportError(t *testing.T) {
	command := &cobra.Command{Use: "burnit [port]"}

	t.Run("PortInUse", func(t *testing.T) {
		buf := captureTerminal(t)
		reportError(command, portInUseError{port: 3000, err: errors.New("in use")})
		assert.Equal(t, "❌ Port 3000 is already in use. Try a different port:\n   burnit 3001\n", buf.String())
	})

	t.Run("PortInUseColours", func(t *testing.T) {
		var buf bytes.Buffer
		terminal.Start()
		oldOut := terminal.Out
		terminal.Out = &buf
		defer func() { terminal.Out = oldOut }()
		reportError(command, portInUseError{port: 3000, err: errors.New("in use")})
		assert.Equal(t, terminal.RedFg+"❌ Port 3000 is already in use. Try a different port:"+terminal.Reset+"\n   "+terminal.YellowFg+"burnit 3001"+terminal.Reset+"\n", buf.String())
	})

	t.Run("Other", func(t *testing.T) {
		buf := captureTerminal(t)
		reportError(command, errors.New("permission denied"))
		assert.Equal(t, "❌ Error: permission denied\n", buf.String())
	})
}

func TestServePortInUse(t *testing.T) {
	listener, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer func() { _ = listener.Close() }()
	_, portString, err := net.SplitHostPort(listener.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portString)
	require.NoError(t, err)

	opt := devserver.DefaultOpt
	opt.Port = port
	opt.NoOpenBrowser = true
	opt.Root = t.TempDir()
	err = serve(context.Background(), opt)
	require.Error(t, err)

	var inUse portInUseError
	require.True(t, errors.As(err, &inUse))
	assert.Equal(t, port, inUse.port)
}

func TestRootFlags(t *testing.T) {
	flags := Root.Flags()
	for _, name := range []string{"no-open-browser", "verbose", "quiet", "log-level", "use-json-log", "version"} {
		assert.NotNil(t, flags.Lookup(name), name)
	}
	assert.Equal(t, "V", flags.Lookup("version").Shorthand)
	assert.Equal(t, "v", flags.Lookup("verbose").Shorthand)
	assert.Equal(t, fs.Version, Root.Version)
	assert.Equal(t, "burnit", Root.Name())
}
