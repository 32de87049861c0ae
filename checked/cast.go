package checked

import "github.com/joshuapare/checkedref/internal/assert"

// Converting copies and moves across related pointee types. The usual
// shape is an upcast: a Ptr[*ConcreteNode] widened into a Ptr[NodeIface]
// where NodeIface is an interface the concrete type satisfies. The
// increment/transfer rules are exactly those of the same-type operations;
// a conversion that does not hold at runtime is a fatal precondition
// violation, not a recoverable failure.

func convert[To, From Pointee](v From) To {
	to, ok := any(v).(To)
	assert.Thatf(ok, "checked: %T does not convert to the requested pointee type", v)
	return to
}

// CastPtr copy-converts: the result charges its own fresh increment.
// Null converts to null.
func CastPtr[To, From Pointee](p *Ptr[From]) Ptr[To] {
	p.checkNotDeleted()
	var zero From
	if p.v == zero {
		return Ptr[To]{}
	}
	return MakePtr(convert[To](p.v))
}

// MoveCastPtr move-converts: the existing increment transfers to the
// result and p becomes null. Null converts to null.
func MoveCastPtr[To, From Pointee](p *Ptr[From]) Ptr[To] {
	p.checkNotDeleted()
	var zero From
	if p.v == zero {
		return Ptr[To]{}
	}
	out := Ptr[To]{v: convert[To](p.v), site: p.site}
	p.v = zero
	p.site = site{}
	return out
}

// CastRef copy-converts a Ref, charging a fresh increment.
func CastRef[To, From Pointee](r *Ref[From]) Ref[To] {
	to := convert[To](r.live())
	to.IncRef()
	return Ref[To]{v: to, site: acquireSite(to)}
}

// MoveCastRef move-converts a Ref; the increment transfers and r is dead
// afterwards.
func MoveCastRef[To, From Pointee](r *Ref[From]) Ref[To] {
	to := convert[To](r.live())
	out := Ref[To]{v: to, site: r.site}
	var zero From
	r.v = zero
	r.site = site{}
	return out
}
