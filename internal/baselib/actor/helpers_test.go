package actor

// inlineSubmitter runs submitted work synchronously, on the caller's own
// goroutine. Used by tests that want deterministic step-by-step control
// instead of the concurrency a real WorkSubmitter would introduce.
type inlineSubmitter struct{}

func (inlineSubmitter) Submit(job func()) {
	job()
}

// newTestDirector builds a Director with a single scheduler, named
// DefaultSchedulerName and set as the default, backed by an inline
// submitter so tests can reason about ordering without sleeps.
func newTestDirector() *Director {
	d := NewDirector()
	d.RegisterScheduler(DefaultSchedulerName, NewPoolScheduler(inlineSubmitter{}))
	d.SetDefaultScheduler(DefaultSchedulerName)
	return d
}

// goroutineSubmitter runs each submitted job on its own goroutine. Used by
// tests that need an actor's step to actually run concurrently with the
// calling goroutine, e.g. a blocking Receive call that must not stall the
// test itself.
type goroutineSubmitter struct{}

func (goroutineSubmitter) Submit(job func()) {
	go job()
}

// newConcurrentTestDirector builds a Director whose default scheduler
// drives actors on real goroutines rather than inline.
func newConcurrentTestDirector() *Director {
	d := NewDirector()
	d.RegisterScheduler(DefaultSchedulerName, NewPoolScheduler(goroutineSubmitter{}))
	d.SetDefaultScheduler(DefaultSchedulerName)
	return d
}
