//go:build !linux

package prioritypool

import "go.uber.org/zap"

// pinToCPU is a no-op outside Linux; CPU affinity is not exposed in a
// portable way by the runtime on other platforms.
func pinToCPU(cpu int, log *zap.Logger) {
	log.Debug("cpu pinning requested but not supported on this platform")
}
