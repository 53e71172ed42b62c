package http

import (
	"github.com/pkg/errors"
)

// IsAddrInUse returns true if err, or any error it wraps, says the
// address the server tried to bind is already in use.
func IsAddrInUse(err error) bool {
	if err == nil {
		return false
	}
	for _, errno := range addrInUseErrors {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
