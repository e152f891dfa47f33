package actor

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// overflowBindable is an optional interface a Scheduler implementation can
// satisfy to receive the registry's mailbox-overflow self-kill callback
// automatically when registered with a Director. PoolScheduler implements
// it; third-party Scheduler implementations that don't need this wiring
// simply don't implement it.
type overflowBindable interface {
	bindOverflowHandler(func(ActorId, DeathReason))
}

// scheduledActor is one actor's bookkeeping inside a PoolScheduler: the
// RunnableActor itself, plus the CAS-guarded "is a drive loop currently
// running for this actor" flag that keeps exactly one worker driving it at
// a time.
type scheduledActor struct {
	actor   RunnableActor
	running atomic.Bool
	stopped atomic.Bool
}

// PoolScheduler is the reference Scheduler implementation: it drives every
// registered actor's Step loop by submitting work to an externally supplied
// WorkSubmitter, using a compare-and-swap flag per actor to guarantee that
// at most one worker is ever stepping a given actor at a time, without
// holding a dedicated goroutine per actor the way a one-goroutine-per-actor
// design would.
type PoolScheduler struct {
	mu         sync.Mutex
	actors     map[ActorId]*scheduledActor
	submitter  WorkSubmitter
	onOverflow func(ActorId, DeathReason)
}

// NewPoolScheduler builds a PoolScheduler driving work through submitter,
// the host's opaque thread pool.
func NewPoolScheduler(submitter WorkSubmitter) *PoolScheduler {
	return &PoolScheduler{
		actors:    make(map[ActorId]*scheduledActor),
		submitter: submitter,
	}
}

// semaphoreSubmitter is a WorkSubmitter backed by a weighted semaphore,
// giving NewLocalPoolScheduler a self-contained bounded worker pool without
// requiring the host to supply one.
type semaphoreSubmitter struct {
	sem *semaphore.Weighted
}

// Submit implements WorkSubmitter.
func (s *semaphoreSubmitter) Submit(job func()) {
	go func() {
		if err := s.sem.Acquire(context.Background(), 1); err != nil {
			log.ErrorS(context.Background(), "failed to acquire worker slot", err)
			return
		}
		defer s.sem.Release(1)
		job()
	}()
}

// NewLocalPoolScheduler builds a PoolScheduler with its own bounded worker
// pool of the given capacity, so the runtime is usable standalone without a
// host-supplied WorkSubmitter. capacity must be positive.
func NewLocalPoolScheduler(capacity int) *PoolScheduler {
	if capacity <= 0 {
		fatalf(BadArgument, "local pool scheduler capacity must be positive, got %d", capacity)
	}
	return NewPoolScheduler(&semaphoreSubmitter{
		sem: semaphore.NewWeighted(int64(capacity)),
	})
}

func (s *PoolScheduler) bindOverflowHandler(fn func(ActorId, DeathReason)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onOverflow = fn
}

// Schedule implements Scheduler.
func (s *PoolScheduler) Schedule(actor RunnableActor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.actors[actor.ID()]; exists {
		fatalf(InternalInvariant, "actor %d scheduled twice", actor.ID())
	}
	s.actors[actor.ID()] = &scheduledActor{actor: actor}
	return nil
}

// Relay implements Scheduler. A full mailbox triggers the bound overflow
// handler (the registry's self-kill with ErrMailboxBlocked) rather than
// blocking the sender or surfacing an error to it.
func (s *PoolScheduler) Relay(id ActorId, msg Message) {
	s.mu.Lock()
	sa, ok := s.actors[id]
	s.mu.Unlock()
	if !ok {
		return
	}

	if !sa.actor.TryEnqueue(msg) {
		s.mu.Lock()
		onOverflow := s.onOverflow
		s.mu.Unlock()
		if onOverflow != nil {
			onOverflow(id, ErrMailboxBlocked)
		}
		return
	}
	s.ensureDriving(sa)
}

// Stop implements Scheduler: it marks the actor for removal once its
// mailbox has drained, and ensures a final drive pass happens so draining
// actually occurs even if no further Relay call ever arrives.
func (s *PoolScheduler) Stop(id ActorId) {
	s.mu.Lock()
	sa, ok := s.actors[id]
	s.mu.Unlock()
	if !ok {
		return
	}
	sa.stopped.Store(true)
	s.ensureDriving(sa)
}

// ensureDriving submits exactly one drive loop for sa if none is currently
// running. The CAS on sa.running is what keeps the single-writer-per-actor
// invariant: a Relay racing a Stop, or two concurrent Relays, can both
// observe sa.running == false, but only one CAS succeeds, and the winner's
// drive loop re-checks Pending() after going idle before actually yielding,
// so a message that arrives in the gap is never stranded.
func (s *PoolScheduler) ensureDriving(sa *scheduledActor) {
	if !sa.running.CompareAndSwap(false, true) {
		return
	}
	s.submitter.Submit(func() {
		s.drive(sa)
	})
}

func (s *PoolScheduler) drive(sa *scheduledActor) {
	for {
		for sa.actor.Step() {
		}
		sa.running.Store(false)

		if sa.actor.Pending() && sa.running.CompareAndSwap(false, true) {
			continue
		}
		break
	}

	if sa.stopped.Load() && !sa.actor.Pending() {
		s.mu.Lock()
		delete(s.actors, sa.actor.ID())
		s.mu.Unlock()
	}
}
