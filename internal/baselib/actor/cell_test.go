package actor

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCellEchoOnce(t *testing.T) {
	t.Parallel()

	d := newTestDirector()
	out := make(chan Message, 1)

	id := d.createActor(BehaviorFunc(func(ctx ExecutionContext, msg Message) Behavior {
		out <- msg
		return nil
	}), "echo", "")

	d.SendMessage(id, "ping")
	require.Equal(t, "ping", recvWithTimeout(t, out))
}

func TestCellBecomeSwitchesBehavior(t *testing.T) {
	t.Parallel()

	d := newTestDirector()
	out := make(chan Message, 4)

	var awake, asleep BehaviorFunc
	awake = func(ctx ExecutionContext, msg Message) Behavior {
		out <- "awake:" + msg.(string)
		if msg == "sleep" {
			return asleep
		}
		return awake
	}
	asleep = func(ctx ExecutionContext, msg Message) Behavior {
		out <- "asleep:" + msg.(string)
		if msg == "wake" {
			return awake
		}
		return asleep
	}

	id := d.createActor(awake, "toggle", "")

	d.SendMessage(id, "ping")
	require.Equal(t, "awake:ping", recvWithTimeout(t, out))

	d.SendMessage(id, "sleep")
	require.Equal(t, "awake:sleep", recvWithTimeout(t, out))

	d.SendMessage(id, "ping")
	require.Equal(t, "asleep:ping", recvWithTimeout(t, out))

	d.SendMessage(id, "wake")
	require.Equal(t, "asleep:wake", recvWithTimeout(t, out))

	d.SendMessage(id, "ping")
	require.Equal(t, "awake:ping", recvWithTimeout(t, out))
}

func TestCellPanicBecomesUserBehaviorThrew(t *testing.T) {
	t.Parallel()

	d := newTestDirector()
	var watchID WatchId
	out := make(chan Message, 1)

	boom := d.createActor(BehaviorFunc(func(ctx ExecutionContext, msg Message) Behavior {
		panic(errors.New("kaboom"))
	}), "boom", "")

	watcher := d.createActor(BehaviorFunc(func(ctx ExecutionContext, msg Message) Behavior {
		watchID = ctx.Watch(boom)
		return forwardTo(out)
	}), "watcher", "")
	d.SendMessage(watcher, "go")

	d.SendMessage(boom, "trigger")

	fired := recvWithTimeout(t, out).(WatchFired)
	require.Equal(t, watchID, fired.WatchID)
	require.ErrorContains(t, fired.Reason.(error), "kaboom")
}

func TestCellPanicWithNonErrorValueIsWrapped(t *testing.T) {
	t.Parallel()

	d := newTestDirector()
	out := make(chan Message, 1)

	boom := d.createActor(BehaviorFunc(func(ctx ExecutionContext, msg Message) Behavior {
		panic("not an error")
	}), "boom", "")

	watcher := d.createActor(BehaviorFunc(func(ctx ExecutionContext, msg Message) Behavior {
		ctx.Watch(boom)
		return forwardTo(out)
	}), "watcher", "")
	d.SendMessage(watcher, "go")
	d.SendMessage(boom, "trigger")

	fired := recvWithTimeout(t, out).(WatchFired)
	require.ErrorContains(t, fired.Reason.(error), "not an error")
}

func TestCellOnStopCalledAfterTermination(t *testing.T) {
	t.Parallel()

	d := newTestDirector()
	stopped := make(chan DeathReason, 1)

	id := d.createActor(&stoppableBehavior{stopped: stopped}, "stoppable", "")
	d.SendMessage(id, "die")

	select {
	case reason := <-stopped:
		require.Equal(t, "bye", reason)
	case <-time.After(time.Second):
		t.Fatal("OnStop was never called")
	}
}

type stoppableBehavior struct {
	stopped chan DeathReason
}

func (s *stoppableBehavior) Apply(ctx ExecutionContext, msg Message) Behavior {
	ctx.Kill(ctx.Self(), "bye")
	return s
}

func (s *stoppableBehavior) OnStop(reason DeathReason) {
	s.stopped <- reason
}

func TestCellReceiveUnblocksOnKill(t *testing.T) {
	t.Parallel()

	d := newConcurrentTestDirector()
	unblocked := make(chan bool, 1)
	exited := make(chan struct{})

	id := d.createActor(BehaviorFunc(func(ctx ExecutionContext, msg Message) Behavior {
		if msg == "block" {
			defer close(exited)
			ctx.Receive()
			unblocked <- true
			return nil
		}
		return nil
	}), "blocker", "")

	d.SendMessage(id, "block")
	// give the worker a moment to reach the blocking Receive call.
	time.Sleep(10 * time.Millisecond)

	d.Kill(id, "shutdown")

	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatal("Receive did not unblock after a kill")
	}

	select {
	case <-unblocked:
		t.Fatal("Receive should not have returned normally after a kill")
	case <-time.After(200 * time.Millisecond):
	}
}
