// Package systemd tells systemd about the state of the server when
// it is run as a notify service.
package systemd

import (
	"sync"

	sysdnotify "github.com/iguanesolutions/go-systemd/v5/notify"
	"github.com/pdiomede/BurnIt/fs"
	"github.com/pdiomede/BurnIt/lib/atexit"
)

// Notify systemd that the service is ready. This returns a function
// which should be called to notify that the service is stopping. This
// function will be called on exit if the service exits on a signal.
func Notify() func() {
	if err := sysdnotify.Ready(); err != nil {
		fs.Logf(nil, "Failed to notify ready to systemd: %v", err)
	}
	var finaliseOnce sync.Once
	finalise := func() {
		finaliseOnce.Do(func() {
			if err := sysdnotify.Stopping(); err != nil {
				fs.Logf(nil, "Failed to notify stopping to systemd: %v", err)
			}
		})
	}
	finaliseHandle := atexit.Register(finalise)
	return func() {
		atexit.Unregister(finaliseHandle)
		finalise()
	}
}
