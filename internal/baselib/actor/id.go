package actor

import (
	"github.com/google/uuid"
)

// newRawID draws 64 bits of entropy from a freshly generated UUID and masks
// off the sign bit so the result is never negative (it may be zero, which
// callers reject). uuid.New reads
// from crypto/rand-backed entropy, which is ample for this purpose and
// avoids hand-rolling an RNG.
func newRawID() int64 {
	u := uuid.New()
	hi := uint64(0)
	for i := 0; i < 8; i++ {
		hi = hi<<8 | uint64(u[i])
	}
	return int64(hi &^ (1 << 63))
}

// newActorId draws a fresh, nonzero ActorId that does not collide with an
// id for which exists reports true. The exists callback takes the
// registry's lock itself for each check; retries are expected to be
// vanishingly rare given the entropy source.
func newActorId(exists func(ActorId) bool) ActorId {
	for {
		id := ActorId(newRawID())
		if id == NonexistentID {
			continue
		}
		if exists != nil && exists(id) {
			continue
		}
		return id
	}
}

// newWatchId draws a fresh, nonzero WatchId that does not collide with an id
// for which exists reports true.
func newWatchId(exists func(WatchId) bool) WatchId {
	for {
		id := WatchId(newRawID())
		if id == 0 {
			continue
		}
		if exists != nil && exists(id) {
			continue
		}
		return id
	}
}
