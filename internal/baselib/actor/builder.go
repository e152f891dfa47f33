package actor

// ActorBuilder is a functional-options convenience for constructing an
// actor. It is intentionally thin: beyond validating its inputs and setting
// the trap-exit flag, it does nothing Director.createActorWithCapacity
// doesn't already do directly.
type ActorBuilder struct {
	initial       Behavior
	trapExit      bool
	mailboxCap    int
	schedulerName string
	description   string
}

// NewActorBuilder starts a builder for an actor whose first behavior is
// initial.
func NewActorBuilder(initial Behavior) *ActorBuilder {
	return &ActorBuilder{
		initial:    initial,
		mailboxCap: DefaultMailboxCapacity,
	}
}

// WithTrapExit sets whether the actor starts with its trap-exit flag set.
func (b *ActorBuilder) WithTrapExit(trap bool) *ActorBuilder {
	b.trapExit = trap
	return b
}

// WithMailboxCapacity overrides the actor's mailbox capacity, which must be
// positive.
func (b *ActorBuilder) WithMailboxCapacity(n int) *ActorBuilder {
	b.mailboxCap = n
	return b
}

// WithScheduler names the scheduler the actor should run on. Empty selects
// the Director's default scheduler.
func (b *ActorBuilder) WithScheduler(name string) *ActorBuilder {
	b.schedulerName = name
	return b
}

// WithDescription attaches a human-readable description to the actor, for
// logging and introspection only.
func (b *ActorBuilder) WithDescription(desc string) *ActorBuilder {
	b.description = desc
	return b
}

// Build validates the accumulated options and creates the actor against d,
// returning its id.
func (b *ActorBuilder) Build(d *Director) ActorId {
	if b.initial == nil {
		fatalf(BadArgument, "actor builder requires a non-nil initial behavior")
	}

	id := d.createActorWithCapacity(b.initial, b.description, b.schedulerName, b.mailboxCap)
	if b.trapExit {
		d.reg.setTrapExit(id, true)
	}
	return id
}
