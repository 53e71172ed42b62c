//go:build unix

package http

import (
	"golang.org/x/sys/unix"
)

var addrInUseErrors = []error{unix.EADDRINUSE}
