package actorutil

import (
	"fmt"
	"sync/atomic"

	"github.com/idokutela/jack/internal/baselib/actor"
)

// Pool is a fixed-size round-robin pool of actors sharing one behavior
// factory. It is Tell-only, matching the runtime's fire-and-forget message
// model: there is no Ask/Future pairing to fan in a response.
type Pool struct {
	id      string
	dir     *actor.Director
	members []actor.ActorId
	next    atomic.Uint64
}

// PoolConfig configures a new Pool.
type PoolConfig struct {
	// ID names the pool, used only to label its members for logging and
	// introspection.
	ID string

	// Size is the number of actor instances to create. Values <= 0 are
	// treated as 1.
	Size int

	// Factory builds the initial behavior for pool member idx.
	Factory func(idx int) actor.Behavior

	// MailboxCapacity overrides each member's mailbox size. Zero selects
	// actor.DefaultMailboxCapacity.
	MailboxCapacity int

	// SchedulerName selects which registered scheduler runs the pool's
	// members. Empty selects the Director's default.
	SchedulerName string
}

// NewPool creates cfg.Size actors from cfg.Factory and returns a Pool that
// dispatches to them round-robin.
func NewPool(d *actor.Director, cfg PoolConfig) *Pool {
	size := cfg.Size
	if size <= 0 {
		size = 1
	}
	mailboxCap := cfg.MailboxCapacity
	if mailboxCap <= 0 {
		mailboxCap = actor.DefaultMailboxCapacity
	}

	members := make([]actor.ActorId, size)
	for i := 0; i < size; i++ {
		members[i] = actor.NewActorBuilder(cfg.Factory(i)).
			WithMailboxCapacity(mailboxCap).
			WithScheduler(cfg.SchedulerName).
			WithDescription(fmt.Sprintf("%s[%d]", cfg.ID, i)).
			Build(d)
	}

	return &Pool{
		id:      cfg.ID,
		dir:     d,
		members: members,
	}
}

// Tell dispatches msg to the next member in round-robin order.
func (p *Pool) Tell(msg actor.Message) {
	idx := p.next.Add(1) % uint64(len(p.members))
	p.dir.SendMessage(p.members[idx], msg)
}

// Broadcast dispatches msg to every member of the pool.
func (p *Pool) Broadcast(msg actor.Message) {
	for _, id := range p.members {
		p.dir.SendMessage(id, msg)
	}
}

// Members returns a copy of the pool's member ids, in creation order.
func (p *Pool) Members() []actor.ActorId {
	out := make([]actor.ActorId, len(p.members))
	copy(out, p.members)
	return out
}

// Stop kills every member of the pool with the given reason.
func (p *Pool) Stop(reason actor.DeathReason) {
	for _, id := range p.members {
		p.dir.Kill(id, reason)
	}
}
