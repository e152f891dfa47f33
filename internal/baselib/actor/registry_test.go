package actor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func recvWithTimeout(t *testing.T, ch <-chan Message) Message {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

// forwardTo returns a Behavior that forwards every message it receives onto
// ch and keeps running.
func forwardTo(ch chan<- Message) Behavior {
	var b BehaviorFunc
	b = func(ctx ExecutionContext, msg Message) Behavior {
		ch <- msg
		return b
	}
	return b
}

func TestWatchDeliversOnceOnDeath(t *testing.T) {
	t.Parallel()

	d := newTestDirector()
	out := make(chan Message, 4)

	targetID := d.createActor(BehaviorFunc(func(ctx ExecutionContext, msg Message) Behavior {
		return nil
	}), "target", "")

	var watchID WatchId
	watcherID := d.createActor(BehaviorFunc(func(ctx ExecutionContext, msg Message) Behavior {
		if _, ok := msg.(string); ok {
			watchID = ctx.Watch(targetID)
			return forwardTo(out)
		}
		return nil
	}), "watcher", "")

	d.SendMessage(watcherID, "install-watch")
	d.SendMessage(targetID, "anything")

	fired := recvWithTimeout(t, out)
	wf, ok := fired.(WatchFired)
	require.True(t, ok)
	require.Equal(t, watchID, wf.WatchID)
	require.Nil(t, wf.Reason)

	select {
	case extra := <-out:
		t.Fatalf("watch fired more than once: %v", extra)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestWatchOnAlreadyDeadActorFiresImmediately(t *testing.T) {
	t.Parallel()

	d := newTestDirector()
	deadID := d.createActor(BehaviorFunc(func(ctx ExecutionContext, msg Message) Behavior {
		return nil
	}), "short-lived", "")
	d.SendMessage(deadID, "die now")

	out := make(chan Message, 1)
	watcher := d.createActor(BehaviorFunc(func(ctx ExecutionContext, msg Message) Behavior {
		ctx.Watch(deadID)
		out <- "installed"
		return forwardTo(out)
	}), "watcher", "")
	d.SendMessage(watcher, "go")

	require.Equal(t, "installed", recvWithTimeout(t, out))
	fired := recvWithTimeout(t, out)
	wf, ok := fired.(WatchFired)
	require.True(t, ok)
	require.Nil(t, wf.Reason)
}

func TestNonTrapExitLinkCascadesKill(t *testing.T) {
	t.Parallel()

	d := newTestDirector()
	out := make(chan Message, 4)

	a := d.createActor(forwardTo(out), "a", "")
	b := d.createActor(BehaviorFunc(func(ctx ExecutionContext, msg Message) Behavior {
		ctx.Bind(a)
		return nil
	}), "b", "")

	// Trigger b's single step, linking then clean-exiting.
	d.SendMessage(b, "go")

	// a is not trap-exit, so it must have been killed as a cascade; a's
	// mailbox is closed, so a send to it is simply dropped, not delivered.
	d.SendMessage(a, "should never arrive")

	select {
	case msg := <-out:
		t.Fatalf("linked non-trap actor kept running: %v", msg)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestTrapExitLinkDeliversEnvelope(t *testing.T) {
	t.Parallel()

	d := newTestDirector()
	out := make(chan Message, 4)

	peer := d.createActor(BehaviorFunc(func(ctx ExecutionContext, msg Message) Behavior {
		return nil
	}), "peer", "")

	trapper := d.createActor(BehaviorFunc(func(ctx ExecutionContext, msg Message) Behavior {
		ctx.TrapExit(true)
		ctx.Bind(peer)
		return forwardTo(out)
	}), "trapper", "")

	d.SendMessage(trapper, "link-up")
	d.SendMessage(peer, "die")

	fired := recvWithTimeout(t, out)
	lf, ok := fired.(LinkFired)
	require.True(t, ok)
	require.Equal(t, peer, lf.PeerID)
}

func TestUnbindPairRemovesLinkBothWays(t *testing.T) {
	t.Parallel()

	d := newTestDirector()
	out := make(chan Message, 4)

	a := d.createActor(forwardTo(out), "a", "")
	b := d.createActor(BehaviorFunc(func(ctx ExecutionContext, msg Message) Behavior {
		ctx.BindPair(a, ctx.Self())
		ctx.UnbindPair(a, ctx.Self())
		return nil
	}), "b", "")

	d.SendMessage(b, "go")
	d.SendMessage(a, "still alive")
	require.Equal(t, "still alive", recvWithTimeout(t, out))
}

func TestUnwatchIsIdempotentAndSuppressesNotification(t *testing.T) {
	t.Parallel()

	d := newTestDirector()
	out := make(chan Message, 4)

	target := d.createActor(forwardTo(out), "target", "")
	watcher := d.createActor(BehaviorFunc(func(ctx ExecutionContext, msg Message) Behavior {
		w := ctx.Watch(target)
		ctx.Unwatch(target, w)
		ctx.Unwatch(target, w)
		return forwardTo(out)
	}), "watcher", "")

	d.SendMessage(watcher, "go")
	d.Kill(target, nil)

	select {
	case msg := <-out:
		t.Fatalf("unwatched watcher still notified: %v", msg)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestKillIsIdempotent(t *testing.T) {
	t.Parallel()

	d := newTestDirector()
	id := d.createActor(BehaviorFunc(func(ctx ExecutionContext, msg Message) Behavior {
		return nil
	}), "", "")

	require.NotPanics(t, func() {
		d.Kill(id, "first")
		d.Kill(id, "second")
	})
}
