package checked

import "github.com/joshuapare/checkedref/internal/assert"

// Ptr is a nullable checked pointer. While a Ptr holds a pointee, exactly
// one increment of that pointee's outstanding count is charged to it; the
// increment is released by Reset, by being displaced through assignment,
// or transferred away by Move/ReleaseNonNil.
//
// The zero value is the null pointer. A Ptr additionally has a reserved
// "deleted" state (see DeletedPtr) used only as an open-addressed hash
// table tombstone; every liveness query on that state is a contract
// violation.
//
// Methods use pointer receivers. Copy with Clone, transfer with Move or
// TakeFrom; duplicating a Ptr by plain struct assignment is misuse (two
// instances would share one increment).
type Ptr[T Pointee] struct {
	v    T
	del  bool
	site site
}

// MakePtr builds a Ptr from a raw pointee, incrementing its count when t
// is non-zero. The returned value is the live instance; store it, don't
// re-copy it.
func MakePtr[T Pointee](t T) Ptr[T] {
	var zero T
	if t == zero {
		return Ptr[T]{}
	}
	t.IncRef()
	return Ptr[T]{v: t, site: acquireSite(t)}
}

// DeletedPtr returns the hash-table tombstone value. It charges no count
// anywhere and is distinguishable from null and from every valid pointee.
func DeletedPtr[T Pointee]() Ptr[T] {
	return Ptr[T]{del: true}
}

// IsDeleted reports whether p is the hash-table tombstone. It is the only
// query that is legal on the tombstone state.
func (p *Ptr[T]) IsDeleted() bool {
	return p.del
}

func (p *Ptr[T]) checkNotDeleted() {
	assert.That(!p.del, "checked: liveness query on a hash-table deleted value")
}

// IsNil reports whether p is null. This is the boolean conversion; no
// numeric view of a Ptr exists.
func (p *Ptr[T]) IsNil() bool {
	p.checkNotDeleted()
	var zero T
	return p.v == zero
}

// Get returns the raw pointee, or the zero value when p is null.
func (p *Ptr[T]) Get() T {
	p.checkNotDeleted()
	return p.v
}

// Deref returns the raw pointee and requires p to be non-null.
func (p *Ptr[T]) Deref() T {
	p.checkNotDeleted()
	var zero T
	assert.That(p.v != zero, "checked: dereference of a null Ptr")
	return p.v
}

// Clone returns a new Ptr to the same pointee, charging it one more
// increment. Cloning a null Ptr yields a null Ptr.
func (p *Ptr[T]) Clone() Ptr[T] {
	p.checkNotDeleted()
	var zero T
	if p.v == zero {
		return Ptr[T]{}
	}
	p.v.IncRef()
	return Ptr[T]{v: p.v, site: acquireSite(p.v)}
}

// Move transfers p's reference to the returned Ptr and nulls p. The
// pointee's count does not change; only the instance responsible for the
// eventual release does.
func (p *Ptr[T]) Move() Ptr[T] {
	p.checkNotDeleted()
	out := Ptr[T]{v: p.v, site: p.site}
	var zero T
	p.v = zero
	p.site = site{}
	return out
}

// Reset releases p's reference, if any, and leaves p null. Resetting the
// hash-table tombstone just clears it; there is nothing to release.
func (p *Ptr[T]) Reset() {
	if p.del {
		p.del = false
		return
	}
	var zero T
	if p.v == zero {
		return
	}
	releaseSite(p.v, p.site)
	p.v.DecRef()
	p.v = zero
	p.site = site{}
}

// swap exchanges the stored slots of p and o.
func (p *Ptr[T]) swap(o *Ptr[T]) {
	p.v, o.v = o.v, p.v
	p.del, o.del = o.del, p.del
	p.site, o.site = o.site, p.site
}

// Set assigns a raw pointee to p, releasing whatever p held before.
//
// The assignment family is copy-and-swap: build the replacement first,
// exchange it into the slot, then release the displaced value. That makes
// self-assignment safe and guarantees the new pointee is incremented
// before the old one is decremented, so a pointee referenced by both
// sides never transiently reads as unreferenced.
func (p *Ptr[T]) Set(t T) {
	tmp := MakePtr(t)
	p.swap(&tmp)
	tmp.Reset()
}

// SetPtr copy-assigns from another Ptr (same rules as Set; o gains
// nothing and loses nothing).
func (p *Ptr[T]) SetPtr(o *Ptr[T]) {
	tmp := o.Clone()
	p.swap(&tmp)
	tmp.Reset()
}

// TakeFrom move-assigns from o: p takes o's reference, o becomes null,
// and whatever p previously held is released. TakeFrom(p) is a no-op.
func (p *Ptr[T]) TakeFrom(o *Ptr[T]) {
	tmp := o.Move()
	p.swap(&tmp)
	tmp.Reset()
}

// Adopt consumes a Ref into p without touching the pointee's count: the
// Ref's existing increment simply changes hands. The Ref is dead
// afterwards. Whatever p previously held is released.
func (p *Ptr[T]) Adopt(r *Ref[T]) {
	tmp := r.IntoPtr()
	p.swap(&tmp)
	tmp.Reset()
}

// ReleaseNonNil detaches p's pointee into a Ref, transferring the
// existing increment (no fresh increment/decrement pair), and nulls p.
// Calling it on a null Ptr is fatal.
func (p *Ptr[T]) ReleaseNonNil() Ref[T] {
	p.checkNotDeleted()
	var zero T
	assert.That(p.v != zero, "checked: ReleaseNonNil on a null Ptr")
	r := Ref[T]{v: p.v, site: p.site}
	p.v = zero
	p.site = site{}
	return r
}

// Is reports whether p points at exactly t.
func (p *Ptr[T]) Is(t T) bool {
	p.checkNotDeleted()
	return p.v == t
}

// Equal reports whether p and o hold the same slot value. Two tombstones
// are equal; a tombstone never equals a live or null Ptr.
func (p *Ptr[T]) Equal(o *Ptr[T]) bool {
	return p.del == o.del && p.v == o.v
}

// EqTarget reports whether p points at exactly t, where t may carry any
// related pointee type (e.g. a raw concrete pointer against a Ptr over
// the interface it was upcast into).
func EqTarget[A, B Pointee](p *Ptr[A], t B) bool {
	var zb B
	if p.IsNil() {
		return t == zb
	}
	if t == zb {
		return false
	}
	return any(p.v) == any(t)
}

// Eq compares pointee identity across differently-typed checked pointers,
// e.g. a Ptr to a concrete node against a Ptr to an interface it was
// upcast into. Two nulls are equal.
func Eq[A, B Pointee](a *Ptr[A], b *Ptr[B]) bool {
	an, bn := a.IsNil(), b.IsNil()
	if an || bn {
		return an && bn
	}
	return any(a.v) == any(b.v)
}
