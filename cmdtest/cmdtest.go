// Package cmdtest creates a testable interface to the burnit main
// function so the command can be tested end to end.
package cmdtest

import (
	"github.com/pdiomede/BurnIt/cmd"
)

func main() {
	cmd.Main()
}
