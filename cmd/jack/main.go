// Command jack is a small demonstration CLI for the actor runtime: it boots
// a fresh Director, registers a local pool scheduler, and spawns
// one of a few built-in demo behaviors to show the runtime's mailbox,
// become, watch, and link traffic on stdout.
package main

import (
	"fmt"
	"os"

	"github.com/idokutela/jack/cmd/jack/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
