package checked

import (
	"fmt"
	"sync/atomic"
)

// Target is the counted-target contract. Anything a checked reference can
// point to must expose it, normally by embedding Counter.
//
// IncRef and DecRef are called once per reference acquired and released;
// implementations must treat an underflow as fatal.
type Target interface {
	IncRef()
	DecRef()
}

// Pointee constrains the types a Ptr or Ref can be instantiated with:
// comparable (so null and identity checks work) and counted. In practice
// that is a pointer to a struct embedding Counter, or an interface over
// such pointers.
type Pointee interface {
	comparable
	Target
}

// poison replaces the count once Destroy has run. Any later IncRef lands
// in negative territory and panics, so touching a destroyed pointee
// through a stale reference fails immediately instead of corrupting a
// recycled counter.
const poison = int64(-1) << 40

// Counter tracks the outstanding checked references to its embedder.
//
// The count is atomic: separate goroutines may each hold their own
// references to one pointee. It implies nothing about the embedder's own
// thread-safety.
type Counter struct {
	n atomic.Int64
}

// IncRef records one more outstanding reference.
func (c *Counter) IncRef() {
	if c.n.Add(1) <= 0 {
		panic("checked: IncRef on a destroyed or corrupt target")
	}
}

// DecRef releases one outstanding reference. Going below zero means a
// reference was released twice, or released after Destroy.
func (c *Counter) DecRef() {
	if c.n.Add(-1) < 0 {
		panic("checked: DecRef below zero (double release, or release after destroy)")
	}
}

// RefCount returns the current number of outstanding references.
func (c *Counter) RefCount() int64 {
	return c.n.Load()
}

// Destroy is the destruction-time liveness check. The embedder's owner
// calls it at the point the object is freed; a non-zero count is a fatal
// liveness violation. On success the counter is poisoned so any further
// use panics.
func (c *Counter) Destroy() {
	n := c.n.Swap(poison)
	if n == poison {
		panic("checked: Destroy called twice")
	}
	if n != 0 {
		dumpLiveSites(c, n)
		panic(fmt.Sprintf("checked: target destroyed with %d outstanding reference(s)", n))
	}
}

// counter keys the debug registry. Having it on Counter means any
// embedder satisfies counterHolder for free.
func (c *Counter) counter() *Counter { return c }

// counterHolder is satisfied by every Counter embedder. Targets that
// implement IncRef/DecRef some other way still work; they just get no
// debug-registry diagnostics.
type counterHolder interface {
	counter() *Counter
}
