package commands

import (
	"os"

	"github.com/btcsuite/btclog/v2"
	"github.com/spf13/cobra"

	"github.com/idokutela/jack/internal/baselib/actor"
)

// workerCount sizes the local pool scheduler's bounded worker pool.
var workerCount int

// verbose turns on debug-level logging of actor lifecycle events.
var verbose bool

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "jack",
	Short: "Demonstrates the jack actor runtime",
	Long: `jack boots a Director, registers a local pool scheduler, and
spawns one of a few built-in demo behaviors, printing the resulting
mailbox and termination traffic to stdout.`,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().IntVar(
		&workerCount, "workers", 4,
		"Worker pool capacity for the local scheduler",
	)
	rootCmd.PersistentFlags().BoolVar(
		&verbose, "verbose", false,
		"Log actor lifecycle events at debug level",
	)

	rootCmd.AddCommand(spawnEchoCmd)
	rootCmd.AddCommand(spawnCounterCmd)
	rootCmd.AddCommand(superviseDemoCmd)
}

// bootstrap builds a fresh Director with a single local-pool scheduler
// registered and set as default, wiring up console logging if requested.
func bootstrap() *actor.Director {
	if verbose {
		handler := btclog.NewDefaultHandler(os.Stderr)
		actor.UseLogger(btclog.NewSLogger(handler))
	}

	d := actor.NewDirector()
	d.RegisterScheduler(
		actor.DefaultSchedulerName,
		actor.NewLocalPoolScheduler(workerCount),
	)
	d.SetDefaultScheduler(actor.DefaultSchedulerName)
	return d
}
