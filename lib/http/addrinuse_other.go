//go:build !unix && !windows

package http

// No portable way to tell on these platforms
var addrInUseErrors []error
