//go:build checkdebug

package checked

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// With the checkdebug build tag, every increment held by a Ptr or Ref
// carries a site token, and a side table keyed by the pointee's Counter
// maps each token to the call stack that acquired it. A liveness
// violation then reports exactly which sites still hold references.
//
// Tokens ride inside the wrapper value, so moves need no bookkeeping at
// all; copies mint fresh tokens and releases retire them.

// site identifies one tracked increment. The zero token is "untracked"
// (pointee does not embed Counter, or the increment left checked custody
// through Ref.Release).
type site struct {
	id uint64
}

var reg = struct {
	mu     sync.Mutex
	nextID uint64
	owners map[*Counter]map[uint64][]uintptr
	log    *zap.Logger
}{
	owners: make(map[*Counter]map[uint64][]uintptr),
	log:    zap.NewNop(),
}

// SetDebugLogger installs the logger used to report live reference sites
// when a liveness violation fires. Defaults to a nop logger.
func SetDebugLogger(l *zap.Logger) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	reg.log = l
}

func acquireSite(t Target) site {
	h, ok := t.(counterHolder)
	if !ok {
		return site{}
	}
	pcs := make([]uintptr, 32)
	n := runtime.Callers(3, pcs)

	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.nextID++
	id := reg.nextID
	c := h.counter()
	sites := reg.owners[c]
	if sites == nil {
		sites = make(map[uint64][]uintptr)
		reg.owners[c] = sites
	}
	sites[id] = pcs[:n]
	return site{id: id}
}

func releaseSite(t Target, s site) {
	if s.id == 0 {
		return
	}
	h, ok := t.(counterHolder)
	if !ok {
		return
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()
	c := h.counter()
	sites := reg.owners[c]
	delete(sites, s.id)
	if len(sites) == 0 {
		delete(reg.owners, c)
	}
}

func dumpLiveSites(c *Counter, n int64) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	sites := reg.owners[c]
	reg.log.Error("pointee destroyed with outstanding checked references",
		zap.Int64("outstanding", n),
		zap.Int("tracked_sites", len(sites)))
	for id, pcs := range sites {
		reg.log.Error("live reference site",
			zap.Uint64("site", id),
			zap.String("acquired_at", stackString(pcs)))
	}
}

func stackString(pcs []uintptr) string {
	var b strings.Builder
	frames := runtime.CallersFrames(pcs)
	for {
		f, more := frames.Next()
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		if !more {
			break
		}
	}
	return b.String()
}
