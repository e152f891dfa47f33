package actor

import (
	"sync"
)

// watchEntry records one outstanding watch: who installed it, and under
// which id, so it can be removed again by unwatch.
type watchEntry struct {
	watcherID ActorId
	watchID   WatchId
}

// actorRecord is the registry's bookkeeping for one live actor. User code
// never sees a *actorRecord directly; it only ever holds an ActorId.
type actorRecord struct {
	id          ActorId
	description string
	schedName   string
	sched       Scheduler
	cell        *cell

	// trapExit is read by bind/kill under the registry lock and written
	// by the owning actor's own goroutine via ExecutionContext.TrapExit;
	// it is not otherwise mutated concurrently, but is a bool guarded by
	// the registry mutex like every other field here.
	trapExit bool
}

// registry is the supervision registry: the single source of truth for
// which actors are alive, who watches whom, and which actors are linked.
// It uses one coarse-grained mutex rather than per-record locks, matching
// the concurrency model's explicit acceptance of coarse-grained contention
// in exchange for a simple, race-free death-propagation algorithm.
type registry struct {
	mu sync.Mutex

	actors map[ActorId]*actorRecord

	// watches is keyed by the watched actor's id; each entry lists every
	// watcher currently observing it.
	watches map[ActorId]map[WatchId]watchEntry

	// links is a symmetric adjacency set: b is present in links[a] iff a
	// is present in links[b].
	links map[ActorId]map[ActorId]struct{}
}

func newRegistry() *registry {
	return &registry{
		actors:  make(map[ActorId]*actorRecord),
		watches: make(map[ActorId]map[WatchId]watchEntry),
		links:   make(map[ActorId]map[ActorId]struct{}),
	}
}

// actorExists reports whether id currently names a live actor. Intended for
// the id generator's collision check; callers must hold no lock.
func (r *registry) actorExists(id ActorId) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.actors[id]
	return ok
}

// watchExists reports whether id is currently in use by any outstanding
// watch. Intended for the id generator's collision check.
func (r *registry) watchExists(id WatchId) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, byTarget := range r.watches {
		if _, ok := byTarget[id]; ok {
			return true
		}
	}
	return false
}

// insert installs a freshly constructed record. The caller must have
// already reserved rec.id via newActorId against actorExists.
func (r *registry) insert(rec *actorRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actors[rec.id] = rec
}

// lookup returns the record for id, if alive.
func (r *registry) lookup(id ActorId) (*actorRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.actors[id]
	return rec, ok
}

// deliver best-effort enqueues msg into target's mailbox via its
// scheduler, silently dropping it if target is no longer alive.
func (r *registry) deliver(target ActorId, msg Message) {
	r.mu.Lock()
	rec, ok := r.actors[target]
	r.mu.Unlock()
	if !ok {
		return
	}
	rec.sched.Relay(target, msg)
}

// setTrapExit updates id's trap-exit flag. A no-op if id is already dead.
func (r *registry) setTrapExit(id ActorId, trap bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.actors[id]; ok {
		rec.trapExit = trap
	}
}

// addWatch installs a new watch of target on behalf of watcher, returning
// its WatchId. If target is already dead, a WatchFired with a nil reason is
// delivered to watcher immediately and the returned id is not retained
// anywhere (there is nothing left to remove it from).
func (r *registry) addWatch(watcher, target ActorId) WatchId {
	id := newWatchId(r.watchExists)

	r.mu.Lock()
	_, alive := r.actors[target]
	if alive {
		if r.watches[target] == nil {
			r.watches[target] = make(map[WatchId]watchEntry)
		}
		r.watches[target][id] = watchEntry{
			watcherID: watcher,
			watchID:   id,
		}
	}
	r.mu.Unlock()

	if !alive {
		r.deliver(watcher, WatchFired{WatchID: id, Reason: nil})
	}
	return id
}

// removeWatch idempotently removes a previously installed watch. No
// notification is sent.
func (r *registry) removeWatch(target ActorId, watch WatchId) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byTarget, ok := r.watches[target]
	if !ok {
		return
	}
	delete(byTarget, watch)
	if len(byTarget) == 0 {
		delete(r.watches, target)
	}
}

func ensureLinkSet(set map[ActorId]map[ActorId]struct{}, id ActorId) map[ActorId]struct{} {
	peers := set[id]
	if peers == nil {
		peers = make(map[ActorId]struct{})
		set[id] = peers
	}
	return peers
}

// bindPair links a and b symmetrically. If both exist, the link is recorded
// (or re-recorded, idempotently) on both sides. If exactly one exists, the
// link-to-a-dead-actor case fires an immediate exit signal at the live side,
// exactly as if the dead side had just died. If neither exists this is an
// internal invariant violation: a live caller always names at least itself.
func (r *registry) bindPair(a, b ActorId) {
	r.mu.Lock()
	recA, okA := r.actors[a]
	recB, okB := r.actors[b]

	if okA && okB {
		ensureLinkSet(r.links, a)[b] = struct{}{}
		ensureLinkSet(r.links, b)[a] = struct{}{}
		r.mu.Unlock()
		return
	}

	if !okA && !okB {
		r.mu.Unlock()
		fatalf(
			InternalInvariant,
			"link requested between two nonexistent actors %d and %d",
			a, b,
		)
	}

	live, dead := a, b
	liveRec := recA
	if okB {
		live, dead = b, a
		liveRec = recB
	}
	trap := liveRec.trapExit
	r.mu.Unlock()

	if trap {
		r.deliver(live, LinkFired{PeerID: dead, Reason: nil})
	} else {
		r.kill(live, LinkFired{PeerID: dead, Reason: nil})
	}
}

// unbindPair best-effort removes the link between a and b, if any. No
// notification is sent.
func (r *registry) unbindPair(a, b ActorId) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if peers, ok := r.links[a]; ok {
		delete(peers, b)
		if len(peers) == 0 {
			delete(r.links, a)
		}
	}
	if peers, ok := r.links[b]; ok {
		delete(peers, a)
		if len(peers) == 0 {
			delete(r.links, b)
		}
	}
}

// kill removes id from the registry and propagates its death to every
// watcher and link peer. Record removal happens before any notification is
// sent, and under the same lock acquisition that captures the watcher and
// peer sets: this makes removal the linearization point for id's death, so
// a cyclic graph of links cannot revisit an already-dying actor.
func (r *registry) kill(id ActorId, reason DeathReason) {
	r.mu.Lock()
	rec, ok := r.actors[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.actors, id)

	watchers := r.watches[id]
	delete(r.watches, id)

	peers := r.links[id]
	delete(r.links, id)
	for peer := range peers {
		if peerSet, ok := r.links[peer]; ok {
			delete(peerSet, id)
			if len(peerSet) == 0 {
				delete(r.links, peer)
			}
		}
	}
	r.mu.Unlock()

	// Mark the cell for death before stopping it, so the scheduler's final
	// drive pass drains any queued messages instead of running them.
	if rec.cell != nil {
		rec.cell.recordReason(reason)
		rec.cell.Interrupt()
	}
	rec.sched.Stop(id)

	for _, w := range watchers {
		r.deliver(w.watcherID, WatchFired{WatchID: w.watchID, Reason: reason})
	}

	wrapped := LinkFired{PeerID: id, Reason: reason}
	for peer := range peers {
		r.mu.Lock()
		peerRec, alive := r.actors[peer]
		trap := alive && peerRec.trapExit
		r.mu.Unlock()

		if !alive {
			continue
		}
		if trap {
			r.deliver(peer, wrapped)
		} else {
			r.kill(peer, wrapped)
		}
	}
}
