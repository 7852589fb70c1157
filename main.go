// Package main is the entry point for the Coursemate CLI application.
package main

import (
	"coursemate/cli/cmd"
)

func main() {
	cmd.Execute()
}
