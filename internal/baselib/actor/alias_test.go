package actor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAliasRegisterIsPutIfAbsent(t *testing.T) {
	t.Parallel()

	a := newAliasTable()
	require.True(t, a.register("worker", ActorId(1)))
	require.False(t, a.register("worker", ActorId(2)))
	require.Equal(t, ActorId(1), a.lookup("worker"))
}

func TestAliasReplaceIsCompareAndSwap(t *testing.T) {
	t.Parallel()

	a := newAliasTable()
	require.True(t, a.register("worker", ActorId(1)))

	require.False(t, a.replace("worker", ActorId(99), ActorId(2)))
	require.Equal(t, ActorId(1), a.lookup("worker"))

	require.True(t, a.replace("worker", ActorId(1), ActorId(2)))
	require.Equal(t, ActorId(2), a.lookup("worker"))
}

func TestAliasReplaceRequiresExistingBinding(t *testing.T) {
	t.Parallel()

	a := newAliasTable()
	require.False(t, a.replace("ghost", ActorId(1), ActorId(2)))
}

func TestAliasDeregister(t *testing.T) {
	t.Parallel()

	a := newAliasTable()
	a.register("worker", ActorId(1))
	a.deregister("worker")
	require.Equal(t, NonexistentID, a.lookup("worker"))

	require.NotPanics(t, func() { a.deregister("worker") })
}

func TestAliasLookupMissReturnsNonexistentID(t *testing.T) {
	t.Parallel()

	a := newAliasTable()
	require.Equal(t, NonexistentID, a.lookup("nobody"))
}
