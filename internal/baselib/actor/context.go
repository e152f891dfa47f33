package actor

// execContext is the concrete ExecutionContext handed to a cell's behavior.
// Every method is a thin, id-based delegation into the cell's registry or
// director: a behavior never sees another actor's record, only ids.
type execContext struct {
	cell *cell
}

// Self implements ExecutionContext.
func (c *execContext) Self() ActorId {
	return c.cell.id
}

// TrapExit implements ExecutionContext.
func (c *execContext) TrapExit(trap bool) {
	c.cell.reg.setTrapExit(c.cell.id, trap)
}

// Send implements ExecutionContext.
func (c *execContext) Send(target ActorId, msg Message) {
	if msg == nil {
		fatalf(BadArgument, "cannot send a nil message")
	}
	c.cell.reg.deliver(target, msg)
}

// Create implements ExecutionContext.
func (c *execContext) Create(initial Behavior, description, schedulerName string) ActorId {
	return c.cell.dir.createActor(initial, description, schedulerName)
}

// Kill implements ExecutionContext.
func (c *execContext) Kill(target ActorId, reason DeathReason) {
	c.cell.reg.kill(target, reason)
}

// Watch implements ExecutionContext.
func (c *execContext) Watch(target ActorId) WatchId {
	return c.cell.reg.addWatch(c.cell.id, target)
}

// Unwatch implements ExecutionContext.
func (c *execContext) Unwatch(target ActorId, watch WatchId) {
	c.cell.reg.removeWatch(target, watch)
}

// Bind implements ExecutionContext.
func (c *execContext) Bind(target ActorId) {
	c.cell.reg.bindPair(c.cell.id, target)
}

// BindPair implements ExecutionContext.
func (c *execContext) BindPair(a, b ActorId) {
	c.cell.reg.bindPair(a, b)
}

// Unbind implements ExecutionContext.
func (c *execContext) Unbind(target ActorId) {
	c.cell.reg.unbindPair(c.cell.id, target)
}

// UnbindPair implements ExecutionContext.
func (c *execContext) UnbindPair(a, b ActorId) {
	c.cell.reg.unbindPair(a, b)
}

// Receive implements ExecutionContext. It blocks the calling worker thread
// until a message arrives in this actor's own mailbox, or panics with
// ErrInterrupted if the actor is killed while blocked. invokeBehavior
// recovers that panic; the kill has already removed the actor, so the death
// reason its observers see is the one passed to Kill.
func (c *execContext) Receive() Message {
	msg, ok := c.cell.mailbox.take(c.cell.interrupt)
	if !ok {
		panic(ErrInterrupted)
	}
	return msg
}

// ShouldDie implements ExecutionContext.
func (c *execContext) ShouldDie() bool {
	return c.cell.shouldDie.Load()
}

// RegisterAlias implements ExecutionContext.
func (c *execContext) RegisterAlias(name string, id ActorId) bool {
	return c.cell.dir.aliases.register(name, id)
}

// ReplaceAlias implements ExecutionContext.
func (c *execContext) ReplaceAlias(name string, old, replacement ActorId) bool {
	return c.cell.dir.aliases.replace(name, old, replacement)
}

// DeregisterAlias implements ExecutionContext.
func (c *execContext) DeregisterAlias(name string) {
	c.cell.dir.aliases.deregister(name)
}

// LookupAlias implements ExecutionContext.
func (c *execContext) LookupAlias(name string) ActorId {
	return c.cell.dir.aliases.lookup(name)
}
