//go:build !checkdebug

package checked

import "go.uber.org/zap"

// site is the per-increment debug token. Without the checkdebug build tag
// it is zero-size and the whole registry compiles to nothing.
type site struct{}

func acquireSite(Target) site       { return site{} }
func releaseSite(Target, site)      {}
func dumpLiveSites(*Counter, int64) {}

// SetDebugLogger installs the logger used to report live reference sites
// on a liveness violation. Without the checkdebug build tag there is no
// registry to report from, so this is a no-op.
func SetDebugLogger(*zap.Logger) {}
