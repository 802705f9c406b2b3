// Command schedctl is the operator CLI for triggering and inspecting
// algorithm runs outside the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/noah-isme/defense-scheduler/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
