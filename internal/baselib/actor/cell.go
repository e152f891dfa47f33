package actor

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// cell is the runtime state of one actor: its current behavior, mailbox,
// and the bookkeeping needed to cooperatively interrupt it. A cell is owned
// by exactly one Scheduler, which must never call Step concurrently for the
// same cell; every other field is safe under that single-writer discipline
// except those explicitly marked atomic, which can be touched by any
// goroutine invoking ExecutionContext or registry.kill.
type cell struct {
	id  ActorId
	reg *registry
	dir *Director
	ctx ExecutionContext

	mailbox *boundedMailbox

	// behavior is mutated only by the owning scheduler's single writer,
	// between Step calls.
	behavior Behavior

	// interrupt is closed exactly once, by Interrupt, to wake a goroutine
	// blocked inside receive().
	interrupt     chan struct{}
	interruptOnce sync.Once

	shouldDie  atomic.Bool
	terminated atomic.Bool

	// reason is stashed by registry.kill so finalize can hand it to a Stoppable
	// behavior once the mailbox has fully drained.
	reason atomic.Value
}

func newCell(id ActorId, reg *registry, dir *Director, initial Behavior, mailboxCap int) *cell {
	c := &cell{
		id:        id,
		reg:       reg,
		dir:       dir,
		behavior:  initial,
		mailbox:   newBoundedMailbox(mailboxCap),
		interrupt: make(chan struct{}),
	}
	c.ctx = &execContext{cell: c}
	return c
}

// ID implements RunnableActor.
func (c *cell) ID() ActorId {
	return c.id
}

// TryEnqueue implements RunnableActor.
func (c *cell) TryEnqueue(msg Message) bool {
	return c.mailbox.tryOffer(msg)
}

// Pending implements RunnableActor.
func (c *cell) Pending() bool {
	if c.terminated.Load() {
		return false
	}
	return c.mailbox.pending() || c.shouldDie.Load()
}

// Interrupt implements RunnableActor. It is safe to call more than once,
// and safe to call concurrently with Step.
func (c *cell) Interrupt() {
	c.shouldDie.Store(true)
	c.interruptOnce.Do(func() {
		close(c.interrupt)
	})
}

// recordReason stashes the actor's death reason for delivery to a Stoppable
// behavior once the mailbox has fully drained. Safe to call more than once;
// only the first call's value sticks.
func (c *cell) recordReason(reason DeathReason) {
	c.reason.CompareAndSwap(nil, reasonBox{reason})
}

// Step implements RunnableActor: it executes at most one message step and
// reports whether it did any work.
//
// Once the actor has been marked for death, Step switches into drain mode:
// it discards buffered messages without invoking the behavior, since the
// actor has already reported its death reason to its watchers and link
// peers. Once the mailbox is empty in drain mode, the cell finalizes and
// every subsequent call returns false.
func (c *cell) Step() bool {
	if c.terminated.Load() {
		return false
	}

	if c.shouldDie.Load() {
		if _, ok := c.mailbox.poll(); ok {
			return true
		}
		c.finalize()
		return false
	}

	if c.behavior == nil {
		fatalf(InternalInvariant, "actor %d stepped with a nil behavior", c.id)
	}

	msg, ok := c.mailbox.poll()
	if !ok {
		return false
	}

	c.invoke(msg)
	return true
}

// invoke runs the current behavior against msg, recovering any panic and
// translating it into the actor's death reason. A nil return from the
// behavior is a clean exit; any other non-nil Behavior becomes the new
// current behavior ("become").
func (c *cell) invoke(msg Message) {
	next, reason, died := c.invokeBehavior(msg)
	if died {
		c.die(reason)
		return
	}
	if next == nil {
		c.die(nil)
		return
	}
	c.behavior = next
}

func (c *cell) invokeBehavior(msg Message) (next Behavior, reason DeathReason, died bool) {
	defer func() {
		if r := recover(); r != nil {
			died = true
			reason = panicToReason(r)
		}
	}()
	next = c.behavior.Apply(c.ctx, msg)
	return next, nil, false
}

func panicToReason(r any) DeathReason {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("actor: user behavior panicked: %v", r)
}

// die begins death propagation for this actor. It is idempotent: if the
// registry has already removed this actor (an external Kill or a link/watch
// cascade arrived first), this is a no-op.
func (c *cell) die(reason DeathReason) {
	c.recordReason(reason)
	c.reg.kill(c.id, reason)
}

// reasonBox lets a nil DeathReason be stored in an atomic.Value, which
// rejects a literal nil interface value.
type reasonBox struct {
	reason DeathReason
}

// finalize runs once, after the mailbox has been fully drained following a
// death. It invokes Stoppable.OnStop if the terminal behavior implements
// it.
func (c *cell) finalize() {
	if !c.terminated.CompareAndSwap(false, true) {
		return
	}
	c.mailbox.close()
	if stoppable, ok := c.behavior.(Stoppable); ok {
		var reason DeathReason
		if boxed, ok := c.reason.Load().(reasonBox); ok {
			reason = boxed.reason
		}
		stoppable.OnStop(reason)
	}
}
