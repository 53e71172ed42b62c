// Package exitcode exports the server's exit status numbers.
package exitcode

const (
	// Success is returned when the server was stopped by an interrupt
	// or finished without error.
	Success = iota
	// Failure is returned when the server could not start, for
	// example because the port is already in use, or stopped with an
	// error.
	Failure
)

// UsageError is returned when there was a syntax or usage error in
// the arguments. It shares its status with Failure.
const UsageError = Failure
