package actor

import (
	"github.com/btcsuite/btclog/v2"
)

// Subsystem is the logging subsystem identifier the host's log rotation /
// level configuration keys off of.
const Subsystem = "ACTR"

// log is the package-wide logger. It defaults to a no-op implementation so
// the package is silent until a host explicitly wires one in via UseLogger.
var log = btclog.Disabled

// UseLogger lets the host program supply a concrete logger implementation.
// It should be called once, during process startup, before any actor is
// created.
func UseLogger(logger btclog.Logger) {
	log = logger
}
