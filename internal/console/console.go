// internal/console/console.go
// Package console holds the shared colorized status formatters.
package console

import "github.com/fatih/color"

var (
	Success = color.New(color.FgGreen).SprintFunc()
	Failure = color.New(color.FgRed).SprintFunc()
	Notice  = color.New(color.FgYellow).SprintFunc()
)
