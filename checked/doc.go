// Package checked provides non-owning references with a runtime
// use-after-free net.
//
// # Overview
//
// A checked reference never extends its pointee's lifetime. Instead, the
// pointee carries a count of outstanding checked references to itself, and
// destroying the pointee while that count is non-zero is an immediate,
// fatal error. This turns latent dangling-pointer bugs into deterministic
// crashes at the point of the violation instead of silent memory
// corruption later.
//
// # Key Types
//
//   - Target: the contract a pointee must satisfy (IncRef/DecRef)
//   - Counter: embeddable Target implementation with the destruction check
//   - Ptr: nullable checked pointer (zero value is null)
//   - Ref: non-null checked reference
//
// A type opts in by embedding Counter and calling Destroy when its owner
// frees it:
//
//	type Node struct {
//	    checked.Counter
//	    // ...
//	}
//
//	n := &Node{}
//	p := checked.MakePtr(n) // n now has 1 outstanding reference
//	// ...
//	p.Reset()               // back to 0
//	n.Destroy()             // ok; would panic if p were still live
//
// # Discipline
//
// Go cannot intercept struct copies, so Ptr and Ref values must not be
// duplicated by plain assignment. Use Clone to copy, Move/TakeFrom to
// transfer, and Reset/Drop to end a reference. Every increment must be
// released exactly once; the Counter panics on the first double release
// it can observe.
//
// Wrapper values are single-owner and unsynchronized. The count itself is
// atomic, so distinct goroutines may hold their own references to one
// pointee, but a single Ptr or Ref must not be shared.
//
// # Hash Tables
//
// Ptr doubles as an open-addressed container element: the null value is
// the empty bucket and DeletedPtr is the tombstone. See the ptrmap
// subpackage for the container side of the protocol.
//
// # Debugging
//
// Building with -tags checkdebug enables a registry that records the call
// stack behind every live increment; a liveness violation then reports
// exactly which sites still hold references. The default build compiles
// all of it down to nothing.
package checked
