// Package ptrmap provides open-addressed containers keyed by checked
// pointers.
//
// A bucket is in one of three states, encoded entirely in the key's own
// value space: empty (null Ptr), deleted (the tombstone from
// checked.DeletedPtr), or live. Keys are hashed by pointee identity, not
// content, so two keys are the same bucket exactly when they point at the
// same object.
//
// Every live bucket charges one increment to its key's pointee. Deleting
// a bucket releases that increment before the tombstone is written; a
// naive overwrite would leak one outstanding reference per evicted
// bucket and the pointee's Destroy would (correctly) report it. For the
// same reason a Map must be Reset before it is discarded.
package ptrmap

import (
	"encoding/binary"
	"reflect"

	"github.com/twmb/murmur3"

	"github.com/joshuapare/checkedref/checked"
	"github.com/joshuapare/checkedref/internal/assert"
)

const minBuckets = 8

// Map is an open-addressed, linear-probed hash map from checked-pointer
// keys to arbitrary values. The zero value is an empty map ready for use.
// Not safe for concurrent use.
type Map[T checked.Pointee, V any] struct {
	buckets []bucket[T, V]
	live    int
	tombs   int
}

type bucket[T checked.Pointee, V any] struct {
	key checked.Ptr[T]
	val V
}

// NewMap returns a Map pre-sized for about capHint live entries.
func NewMap[T checked.Pointee, V any](capHint int) *Map[T, V] {
	m := &Map[T, V]{}
	if capHint > 0 {
		m.buckets = make([]bucket[T, V], bucketsFor(capHint))
	}
	return m
}

// bucketsFor returns the power-of-two table size that keeps n live
// entries under the 3/4 load limit.
func bucketsFor(n int) int {
	sz := minBuckets
	for sz*3 < n*4 {
		sz <<= 1
	}
	return sz
}

// hashOf hashes the pointee's identity. Content never participates, so a
// key hashes the same before and after the pointee mutates.
func hashOf[T checked.Pointee](t T) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(addrOf(t)))
	return murmur3.Sum64(b[:])
}

// addrOf extracts the pointee's address. Pointee instantiations are
// pointers (possibly behind an interface), so reflect's Pointer is
// always applicable.
func addrOf[T checked.Pointee](t T) uintptr {
	return reflect.ValueOf(t).Pointer()
}

// find probes for t. It returns the index of the live bucket holding t
// (or -1), plus the insertion slot for t: the first tombstone on the
// probe path if there was one, else the empty bucket that ended it.
// Tombstones never stop a probe; stopping early would make keys inserted
// past a since-deleted collision unreachable.
func (m *Map[T, V]) find(t T) (at, insert int) {
	mask := len(m.buckets) - 1
	i := int(hashOf(t) & uint64(mask))
	insert = -1
	for {
		b := &m.buckets[i]
		switch {
		case b.key.IsDeleted():
			if insert < 0 {
				insert = i
			}
		case b.key.IsNil():
			if insert < 0 {
				insert = i
			}
			return -1, insert
		case b.key.Is(t):
			return i, insert
		}
		i = (i + 1) & mask
	}
}

// Put inserts or updates the value for t. Inserting charges one
// increment to t; updating charges nothing.
func (m *Map[T, V]) Put(t T, v V) {
	var zero T
	assert.That(t != zero, "ptrmap: Put with a nil key")
	m.ensureRoom()
	at, insert := m.find(t)
	if at >= 0 {
		m.buckets[at].val = v
		return
	}
	b := &m.buckets[insert]
	if b.key.IsDeleted() {
		m.tombs--
	}
	b.key = checked.MakePtr(t)
	b.val = v
	m.live++
}

// Get returns the value stored for t.
func (m *Map[T, V]) Get(t T) (V, bool) {
	var zerov V
	if m.live == 0 {
		return zerov, false
	}
	at, _ := m.find(t)
	if at < 0 {
		return zerov, false
	}
	return m.buckets[at].val, true
}

// Has reports whether t is a key.
func (m *Map[T, V]) Has(t T) bool {
	_, ok := m.Get(t)
	return ok
}

// Delete removes t's bucket, releasing its key increment, and reports
// whether anything was removed.
func (m *Map[T, V]) Delete(t T) bool {
	if m.live == 0 {
		return false
	}
	at, _ := m.find(t)
	if at < 0 {
		return false
	}
	m.deleteBucket(&m.buckets[at])
	m.live--
	m.tombs++
	return true
}

// deleteBucket is the custom bucket-deletion routine: move the key out,
// release its increment, then write the tombstone.
func (m *Map[T, V]) deleteBucket(b *bucket[T, V]) {
	old := b.key.Move()
	old.Reset()
	b.key = checked.DeletedPtr[T]()
	var zerov V
	b.val = zerov
}

// Len returns the number of live entries.
func (m *Map[T, V]) Len() int {
	return m.live
}

// Range calls fn for every live entry until it returns false. The map
// must not be mutated during the walk.
func (m *Map[T, V]) Range(fn func(T, V) bool) {
	for i := range m.buckets {
		b := &m.buckets[i]
		if b.key.IsDeleted() || b.key.IsNil() {
			continue
		}
		if !fn(b.key.Get(), b.val) {
			return
		}
	}
}

// Reset releases every key increment and empties the map. Required
// before discarding a non-empty map; dropped buckets would otherwise
// keep their pointees' counts charged forever.
func (m *Map[T, V]) Reset() {
	for i := range m.buckets {
		b := &m.buckets[i]
		if b.key.IsDeleted() {
			b.key.Reset()
			continue
		}
		if !b.key.IsNil() {
			old := b.key.Move()
			old.Reset()
		}
		var zerov V
		b.val = zerov
	}
	m.buckets = nil
	m.live = 0
	m.tombs = 0
}

// ensureRoom grows (and drops tombstones) before an insert would push
// occupancy past 3/4 of the table.
func (m *Map[T, V]) ensureRoom() {
	if m.buckets == nil {
		m.buckets = make([]bucket[T, V], minBuckets)
		return
	}
	if (m.live+m.tombs+1)*4 <= len(m.buckets)*3 {
		return
	}
	m.rehash(bucketsFor(m.live*2 + 1))
}

// rehash moves every live key into a fresh table. Keys transfer; no
// count changes hands and tombstones are discarded.
func (m *Map[T, V]) rehash(size int) {
	old := m.buckets
	m.buckets = make([]bucket[T, V], size)
	m.tombs = 0
	mask := size - 1
	for i := range old {
		b := &old[i]
		if b.key.IsDeleted() || b.key.IsNil() {
			continue
		}
		j := int(hashOf(b.key.Get()) & uint64(mask))
		for !m.buckets[j].key.IsNil() {
			j = (j + 1) & mask
		}
		nb := &m.buckets[j]
		nb.key = b.key.Move()
		nb.val = b.val
	}
}
