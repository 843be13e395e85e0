// cmd/svbench/main.go
package main

import (
	cmd "github.com/mwiater/svbench/internal/cli"
)

var executeCmd = cmd.Execute

// main starts the svbench CLI application by delegating to the cobra root
// command defined in the cli package.
func main() {
	executeCmd()
}
