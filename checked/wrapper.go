package checked

// Traits for generic code that must treat checked pointers uniformly with
// other reference-like wrappers.

// Getter is the common read surface of *Ptr and *Ref: anything that can
// produce the underlying raw pointee. Generic code that only needs to
// look at the pointee should accept a Getter rather than a concrete
// wrapper.
type Getter[T Pointee] interface {
	Get() T
}

// Wrapper is satisfied by every checked wrapper in this package,
// whatever its pointee type. RawTarget exposes the pointee through the
// counted-target contract; it is nil for a null Ptr.
type Wrapper interface {
	RawTarget() Target
	checkedWrapper()
}

// IsWrapper reports whether v is one of this package's checked wrappers.
func IsWrapper(v any) bool {
	_, ok := v.(Wrapper)
	return ok
}

// RawTarget returns the pointee as a Target, or nil when p is null.
func (p *Ptr[T]) RawTarget() Target {
	p.checkNotDeleted()
	var zero T
	if p.v == zero {
		return nil
	}
	return p.v
}

func (p *Ptr[T]) checkedWrapper() {}

// RawTarget returns the pointee as a Target.
func (r *Ref[T]) RawTarget() Target {
	return r.live()
}

func (r *Ref[T]) checkedWrapper() {}
