package actor

import (
	"context"
	"sync"
)

// DefaultSchedulerName is the name a Director falls back to when an actor
// is created without an explicit scheduler name.
const DefaultSchedulerName = "default"

// DefaultMailboxCapacity is the mailbox size an actor gets when its builder
// does not specify one, and the only capacity an actor spawned via
// ExecutionContext.Create can ever get (that path takes no capacity
// argument). Sized on the order of 10^7 so that mailbox overflow stays the
// rare, pathological case spec.md intends it to be rather than something
// ordinary load trips over.
const DefaultMailboxCapacity = 10_000_000

// Director is the runtime's facade: it owns the supervision registry, the
// alias table, and the set of registered Schedulers, and is the one type a
// host program constructs directly. Actors never see a *Director; they
// speak only through ExecutionContext.
type Director struct {
	reg     *registry
	aliases *aliasTable

	mu               sync.Mutex
	schedulers       map[string]Scheduler
	defaultScheduler string
}

// NewDirector builds an empty Director with no registered schedulers. At
// least one scheduler must be registered, and a default selected, before
// any actor can be created.
func NewDirector() *Director {
	return &Director{
		reg:        newRegistry(),
		aliases:    newAliasTable(),
		schedulers: make(map[string]Scheduler),
	}
}

var defaultDirector = sync.OnceValue(func() *Director {
	return NewDirector()
})

// Default returns the process-wide Director singleton, constructing it
// lazily on first use rather than relying on package-init ordering (a host
// embedding this package alongside others that also initialize actors at
// init time should not have to care which init runs first).
func Default() *Director {
	return defaultDirector()
}

// RegisterScheduler makes sched available under name for actor creation. If
// sched implements the optional overflow-binding hook, the Director wires
// its own mailbox-overflow self-kill into it automatically.
func (d *Director) RegisterScheduler(name string, sched Scheduler) {
	if name == "" {
		fatalf(BadArgument, "scheduler name must not be empty")
	}
	if sched == nil {
		fatalf(BadArgument, "scheduler must not be nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.schedulers[name]; exists {
		fatalf(BadArgument, "scheduler %q is already registered", name)
	}

	if bindable, ok := sched.(overflowBindable); ok {
		bindable.bindOverflowHandler(d.killForOverflow)
	}
	d.schedulers[name] = sched

	log.DebugS(context.Background(), "scheduler registered",
		"scheduler_name", name)
}

// SetDefaultScheduler designates name, which must already be registered, as
// the scheduler used when an actor is created without naming one
// explicitly.
func (d *Director) SetDefaultScheduler(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.schedulers[name]; !exists {
		fatalf(BadArgument, "cannot set unknown scheduler %q as default", name)
	}
	d.defaultScheduler = name
}

func (d *Director) schedulerNamed(name string) Scheduler {
	d.mu.Lock()
	defer d.mu.Unlock()

	if name == "" {
		name = d.defaultScheduler
	}
	if name == "" {
		name = DefaultSchedulerName
	}

	sched, ok := d.schedulers[name]
	if !ok {
		fatalf(BadArgument, "unknown scheduler %q", name)
	}
	return sched
}

func (d *Director) killForOverflow(id ActorId, reason DeathReason) {
	log.WarnS(context.Background(), "mailbox overflow, killing actor",
		ErrMailboxBlocked, "actor_id", id)
	d.reg.kill(id, reason)
}

// createActorWithCapacity is the single construction path shared by
// ExecutionContext.Create and ActorBuilder.Build.
func (d *Director) createActorWithCapacity(
	initial Behavior, description, schedulerName string, mailboxCap int,
) ActorId {
	if initial == nil {
		fatalf(BadArgument, "initial behavior must not be nil")
	}
	if mailboxCap <= 0 {
		fatalf(BadArgument, "mailbox capacity must be positive, got %d", mailboxCap)
	}

	sched := d.schedulerNamed(schedulerName)
	id := newActorId(d.reg.actorExists)
	c := newCell(id, d.reg, d, initial, mailboxCap)

	rec := &actorRecord{
		id:          id,
		description: description,
		schedName:   schedulerName,
		sched:       sched,
		cell:        c,
	}
	d.reg.insert(rec)

	if err := sched.Schedule(c); err != nil {
		fatalf(InternalInvariant, "failed to schedule actor %d: %v", id, err)
	}

	log.DebugS(context.Background(), "actor created",
		"actor_id", id, "description", description)
	return id
}

// createActor creates an actor with the default mailbox capacity; it backs
// ExecutionContext.Create.
func (d *Director) createActor(initial Behavior, description, schedulerName string) ActorId {
	return d.createActorWithCapacity(initial, description, schedulerName, DefaultMailboxCapacity)
}

// SendMessage enqueues msg into target's mailbox on behalf of a caller that
// is not itself an actor (e.g. CLI or test setup code). It is a no-op if
// target is unknown.
func (d *Director) SendMessage(target ActorId, msg Message) {
	if msg == nil {
		fatalf(BadArgument, "cannot send a nil message")
	}
	d.reg.deliver(target, msg)
}

// Kill initiates death propagation of target with the given reason, on
// behalf of a caller that is not itself an actor.
func (d *Director) Kill(target ActorId, reason DeathReason) {
	d.reg.kill(target, reason)
}

// RegisterAlias atomically binds name to id iff name is currently unbound.
func (d *Director) RegisterAlias(name string, id ActorId) bool {
	return d.aliases.register(name, id)
}

// ReplaceAlias atomically rebinds name from old to replacement iff name is
// currently bound to old.
func (d *Director) ReplaceAlias(name string, old, replacement ActorId) bool {
	return d.aliases.replace(name, old, replacement)
}

// DeregisterAlias unconditionally removes name's binding, if any.
func (d *Director) DeregisterAlias(name string) {
	d.aliases.deregister(name)
}

// LookupAlias returns the id bound to name, or NonexistentID if name is
// unbound.
func (d *Director) LookupAlias(name string) ActorId {
	return d.aliases.lookup(name)
}

// Director implements SystemContext.
func (d *Director) Director() *Director {
	return d
}
