package port

// Looper is a single execution context. Tasks posted to it run one at a
// time in the order they were posted.
type Looper interface {
	// Post enqueues task and reports whether it was accepted. It never blocks.
	Post(task func()) bool
}
