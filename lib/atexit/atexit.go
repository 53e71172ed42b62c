// Package atexit provides handling for functions you want called when
// the program exits unexpectedly due to a signal.
//
// You should also make sure you call Run in the normal exit path.
package atexit

import (
	"os"
	"os/signal"
	"sync"

	"github.com/pdiomede/BurnIt/fs"
	"github.com/pdiomede/BurnIt/lib/exitcode"
)

var (
	fns          []*func()
	fnsMutex     sync.Mutex
	exitChan     chan os.Signal
	exitOnce     sync.Once
	registerOnce sync.Once
	exit         = os.Exit
)

// FnHandle is the type of the handle returned by function `Register`
// that can be used to unregister an at-exit function
type FnHandle *func()

// Register a function to be called on exit.
// Returns a handle which can be used to unregister the function with `Unregister`.
//
// Functions run in the reverse order of registration, like defers.
func Register(fn func()) FnHandle {
	fnsMutex.Lock()
	fns = append(fns, &fn)
	fnsMutex.Unlock()

	// Run AtExit handlers on exitSignals so everything gets tidied up properly
	registerOnce.Do(func() {
		exitChan = make(chan os.Signal, 1)
		signal.Notify(exitChan, exitSignals...)
		go func() {
			handleSignal(<-exitChan)
		}()
	})

	return &fn
}

// handleSignal runs the exit functions then exits the process
//
// An exit signal is how the user stops a foreground server so it is
// a normal exit.
func handleSignal(sig os.Signal) {
	signal.Stop(exitChan)
	fs.Infof(nil, "Signal received: %s", sig)
	Run()
	fs.Infof(nil, "Exiting...")
	exit(exitcode.Success)
}

// Unregister a function using the handle returned by `Register`
func Unregister(handle FnHandle) {
	fnsMutex.Lock()
	defer fnsMutex.Unlock()
	for i, fn := range fns {
		if fn == handle {
			fns = append(fns[:i], fns[i+1:]...)
			return
		}
	}
}

// Run all the at exit functions if they haven't been run already
func Run() {
	exitOnce.Do(func() {
		fnsMutex.Lock()
		toRun := make([]*func(), len(fns))
		copy(toRun, fns)
		fnsMutex.Unlock()
		for i := len(toRun) - 1; i >= 0; i-- {
			(*toRun[i])()
		}
	})
}
