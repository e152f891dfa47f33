package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/idokutela/jack/internal/actorutil"
	"github.com/idokutela/jack/internal/baselib/actor"
)

var spawnEchoCmd = &cobra.Command{
	Use:   "spawn-echo [message]",
	Short: "Spawn an actor that prints one message and exits",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg := "hello from jack"
		if len(args) == 1 {
			msg = args[0]
		}

		d := bootstrap()
		echo := actor.NewActorBuilder(actor.BehaviorFunc(
			func(ctx actor.ExecutionContext, msg actor.Message) actor.Behavior {
				fmt.Printf("echo: %v\n", msg)
				return nil
			},
		)).WithDescription("demo-echo").Build(d)

		died := actorutil.AwaitDeath(d, echo)
		d.SendMessage(echo, msg)

		select {
		case <-died:
		case <-time.After(time.Second):
			return errors.New("echo actor did not terminate in time")
		}
		return nil
	},
}

var spawnCounterCmd = &cobra.Command{
	Use:   "spawn-counter",
	Short: "Spawn a counter actor demonstrating become",
	RunE: func(cmd *cobra.Command, args []string) error {
		d := bootstrap()
		counter := actor.NewActorBuilder(countingBehavior(0)).
			WithDescription("demo-counter").
			Build(d)

		died := actorutil.AwaitDeath(d, counter)

		d.SendMessage(counter, "inc")
		d.SendMessage(counter, "inc")
		d.SendMessage(counter, "inc")
		d.SendMessage(counter, "reset")
		d.SendMessage(counter, "inc")
		d.SendMessage(counter, "stop")

		select {
		case <-died:
		case <-time.After(time.Second):
			return errors.New("counter actor did not terminate in time")
		}
		return nil
	},
}

// countingBehavior implements a minimal counter via "become": every message
// captures the next behavior as a closure over the updated count.
func countingBehavior(count int) actor.Behavior {
	return actor.BehaviorFunc(func(ctx actor.ExecutionContext, msg actor.Message) actor.Behavior {
		switch msg {
		case "inc":
			count++
			fmt.Printf("counter: %d\n", count)
			return countingBehavior(count)
		case "reset":
			fmt.Println("counter: reset")
			return countingBehavior(0)
		case "stop":
			fmt.Println("counter: stopping")
			return nil
		default:
			return countingBehavior(count)
		}
	})
}

var superviseDemoCmd = &cobra.Command{
	Use:   "supervise-demo",
	Short: "Spawn a trap-exit supervisor linked to a worker that panics",
	RunE: func(cmd *cobra.Command, args []string) error {
		d := bootstrap()

		worker := actor.NewActorBuilder(actor.BehaviorFunc(
			func(ctx actor.ExecutionContext, msg actor.Message) actor.Behavior {
				panic(fmt.Sprintf("worker exploded on: %v", msg))
			},
		)).WithDescription("demo-worker").Build(d)

		reports := make(chan actor.LinkFired, 1)
		supervisor := actor.NewActorBuilder(actor.BehaviorFunc(
			func(ctx actor.ExecutionContext, msg actor.Message) actor.Behavior {
				if fired, ok := msg.(actor.LinkFired); ok {
					reports <- fired
					return nil
				}
				ctx.TrapExit(true)
				ctx.Bind(worker)
				return actor.BehaviorFunc(
					func(ctx actor.ExecutionContext, msg actor.Message) actor.Behavior {
						if fired, ok := msg.(actor.LinkFired); ok {
							reports <- fired
							return nil
						}
						return nil
					},
				)
			},
		)).WithDescription("demo-supervisor").Build(d)

		d.SendMessage(supervisor, "start")
		d.SendMessage(worker, "crash me")

		select {
		case fired := <-reports:
			fmt.Printf(
				"supervisor trapped exit of actor %d, reason: %v\n",
				fired.PeerID, fired.Reason,
			)
		case <-time.After(time.Second):
			return errors.New("supervisor never observed the link exit")
		}
		return nil
	},
}
