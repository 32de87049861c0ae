package checked

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRef_MakeRefNilIsFatal: the non-null variant refuses to exist
// without a pointee.
func TestRef_MakeRefNilIsFatal(t *testing.T) {
	require.Panics(t, func() { MakeRef[*node](nil) })
}

// TestRef_CloneAndDrop: copies increment, drops decrement, and the
// pointee destroys cleanly once every Ref is gone.
func TestRef_CloneAndDrop(t *testing.T) {
	n := &node{}
	r := MakeRef(n)
	assert.EqualValues(t, 1, n.RefCount())
	assert.Same(t, n, r.Get())

	s := r.Clone()
	assert.EqualValues(t, 2, n.RefCount())

	s.Drop()
	assert.EqualValues(t, 1, n.RefCount())
	r.Drop()
	assert.EqualValues(t, 0, n.RefCount())

	require.NotPanics(t, n.Destroy)
}

// TestRef_MoveKillsSource: the count is unchanged and the moved-from
// instance is dead.
func TestRef_MoveKillsSource(t *testing.T) {
	n := &node{}
	r := MakeRef(n)
	s := r.Move()
	assert.EqualValues(t, 1, n.RefCount())
	assert.Same(t, n, s.Get())

	require.Panics(t, func() { r.Get() }, "use after move-out")
	require.Panics(t, r.Drop, "double-ended release")

	s.Drop()
	n.Destroy()
}

// TestRef_ReleaseHandsOffIncrement: Release detaches the raw pointee
// leaving its increment charged; the caller owns the eventual DecRef.
func TestRef_ReleaseHandsOffIncrement(t *testing.T) {
	n := &node{}
	r := MakeRef(n)

	raw := r.Release()
	assert.Same(t, n, raw)
	assert.EqualValues(t, 1, n.RefCount(), "release must not decrement")
	require.Panics(t, func() { r.Get() }, "use after release")

	raw.DecRef()
	require.NotPanics(t, n.Destroy)
}

// TestRef_PtrConversions: AsPtr copies (one more increment), IntoPtr
// consumes (count-neutral).
func TestRef_PtrConversions(t *testing.T) {
	n := &node{}
	r := MakeRef(n)

	p := r.AsPtr()
	assert.EqualValues(t, 2, n.RefCount())
	assert.True(t, p.Is(n))

	q := r.IntoPtr()
	assert.EqualValues(t, 2, n.RefCount(), "adoption has no churn")
	assert.True(t, q.Is(n))
	require.Panics(t, func() { r.Get() })

	p.Reset()
	q.Reset()
	require.NotPanics(t, n.Destroy)
}

// TestRef_RoundTripThroughPtr mirrors the Ptr round-trip from the other
// side: Ref -> Ptr -> Ref keeps exactly one increment alive throughout.
func TestRef_RoundTripThroughPtr(t *testing.T) {
	n := &node{}
	r := MakeRef(n)

	p := r.IntoPtr()
	s := p.ReleaseNonNil()
	assert.EqualValues(t, 1, n.RefCount())
	assert.Same(t, n, s.Get())

	s.Drop()
	require.NotPanics(t, n.Destroy)
}
