package actor

import "sync"

// aliasTable maps human-readable names to actor ids, independent of the
// supervision registry: an alias is not removed when the actor it names
// dies and says nothing about that actor's liveness, it is purely a lookup
// convenience layered on top of ids.
//
// All three mutators are deliberately atomic with respect to one another so
// that name ownership races (two actors racing to register the same name,
// or a caretaker racing a replacement against a dying holder) resolve
// predictably instead of via read-then-write.
type aliasTable struct {
	mu     sync.Mutex
	byName map[string]ActorId
}

func newAliasTable() *aliasTable {
	return &aliasTable{
		byName: make(map[string]ActorId),
	}
}

// register atomically binds name to id iff name is not already bound,
// reporting whether it did so.
func (a *aliasTable) register(name string, id ActorId) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, taken := a.byName[name]; taken {
		return false
	}
	a.byName[name] = id
	return true
}

// replace atomically rebinds name from old to replacement iff name is
// currently bound to old, reporting whether it did so.
func (a *aliasTable) replace(name string, old, replacement ActorId) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	current, ok := a.byName[name]
	if !ok || current != old {
		return false
	}
	a.byName[name] = replacement
	return true
}

// deregister unconditionally removes name's binding, if any.
func (a *aliasTable) deregister(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.byName, name)
}

// lookup returns the id bound to name, or NonexistentID on a miss.
func (a *aliasTable) lookup(name string) ActorId {
	a.mu.Lock()
	defer a.mu.Unlock()
	id, ok := a.byName[name]
	if !ok {
		return NonexistentID
	}
	return id
}
