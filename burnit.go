// Serve the BurnIt web app for local development
package main

import (
	"github.com/pdiomede/BurnIt/cmd"
)

func main() {
	cmd.Main()
}
