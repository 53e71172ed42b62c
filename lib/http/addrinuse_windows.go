//go:build windows

package http

import (
	"golang.org/x/sys/windows"
)

var addrInUseErrors = []error{windows.WSAEADDRINUSE}
