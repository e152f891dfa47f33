// Package actorutil provides convenience helpers layered on top of
// internal/baselib/actor for callers that are not themselves actors: test
// setup code, CLI commands, and anything else that wants to observe or
// drive the runtime from the outside.
package actorutil

import (
	"github.com/idokutela/jack/internal/baselib/actor"
)

// DeathNotice is what AwaitDeath delivers once the watched actor dies.
type DeathNotice struct {
	Reason actor.DeathReason
}

// startWatch is AwaitDeath's own one-shot kickoff message: an actor does
// nothing until it has processed a first message, so AwaitDeath sends
// itself one immediately after creation to get the watch installed.
type startWatch struct{}

// AwaitDeath bridges a one-shot watch of target into a buffered Go channel,
// letting non-actor code block on (or select over) an actor's death without
// writing a behavior of its own. The returned channel receives exactly one
// DeathNotice and is never closed.
func AwaitDeath(d *actor.Director, target actor.ActorId) <-chan DeathNotice {
	out := make(chan DeathNotice, 1)

	awaiting := actor.BehaviorFunc(func(ctx actor.ExecutionContext, msg actor.Message) actor.Behavior {
		if fired, ok := msg.(actor.WatchFired); ok {
			out <- DeathNotice{Reason: fired.Reason}
		}
		return nil
	})

	start := actor.BehaviorFunc(func(ctx actor.ExecutionContext, msg actor.Message) actor.Behavior {
		ctx.Watch(target)
		return awaiting
	})

	id := actor.NewActorBuilder(start).
		WithDescription("actorutil.AwaitDeath").
		Build(d)
	d.SendMessage(id, startWatch{})

	return out
}
