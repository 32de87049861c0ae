package checked

import "github.com/joshuapare/checkedref/internal/assert"

// Ref is the non-null refinement of Ptr: it always charges exactly one
// increment to its pointee and cannot be reset to null. A Ref ends its
// life in one of two ways: Drop, which releases the increment, or a
// consuming hand-off (Release, IntoPtr, MoveCastRef) that transfers the
// increment elsewhere. After either, the instance is dead and any use
// panics.
//
// There is no usable zero value; construct with MakeRef or by releasing a
// non-null Ptr.
type Ref[T Pointee] struct {
	v    T
	site site
}

// MakeRef builds a Ref from a raw pointee, incrementing its count. A zero
// t is a fatal precondition violation.
func MakeRef[T Pointee](t T) Ref[T] {
	var zero T
	assert.That(t != zero, "checked: MakeRef from a nil pointee")
	t.IncRef()
	return Ref[T]{v: t, site: acquireSite(t)}
}

func (r *Ref[T]) live() T {
	var zero T
	assert.That(r.v != zero, "checked: use of a released Ref")
	return r.v
}

// Get returns the raw pointee. Non-null by construction; panics only on
// use after release.
func (r *Ref[T]) Get() T {
	return r.live()
}

// Clone returns a second Ref to the same pointee, charging one more
// increment.
func (r *Ref[T]) Clone() Ref[T] {
	t := r.live()
	t.IncRef()
	return Ref[T]{v: t, site: acquireSite(t)}
}

// Move transfers r's reference to the returned Ref; r is dead afterwards
// and the count is unchanged.
func (r *Ref[T]) Move() Ref[T] {
	r.live()
	out := Ref[T]{v: r.v, site: r.site}
	var zero T
	r.v = zero
	r.site = site{}
	return out
}

// Release detaches and returns the raw pointee without decrementing; the
// increment stays charged and becomes the caller's to hand off. This is
// the low-level escape hatch; prefer IntoPtr, which keeps the transfer
// inside checked types. r is dead afterwards.
func (r *Ref[T]) Release() T {
	t := r.live()
	releaseSite(t, r.site)
	var zero T
	r.v = zero
	r.site = site{}
	return t
}

// Drop releases r's increment and kills the instance. Every Ref not
// consumed by a hand-off must end with Drop.
func (r *Ref[T]) Drop() {
	t := r.live()
	releaseSite(t, r.site)
	t.DecRef()
	var zero T
	r.v = zero
	r.site = site{}
}

// AsPtr returns a nullable view of the same pointee, charging a new
// increment; r stays live.
func (r *Ref[T]) AsPtr() Ptr[T] {
	t := r.live()
	t.IncRef()
	return Ptr[T]{v: t, site: acquireSite(t)}
}

// IntoPtr consumes r into a Ptr, transferring the existing increment
// with no count churn. r is dead afterwards.
func (r *Ref[T]) IntoPtr() Ptr[T] {
	r.live()
	out := Ptr[T]{v: r.v, site: r.site}
	var zero T
	r.v = zero
	r.site = site{}
	return out
}
