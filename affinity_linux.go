//go:build linux

package prioritypool

import (
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// pinToCPU locks the calling goroutine to its current OS thread and
// restricts that thread to the given CPU. It must be called from the
// goroutine that should be pinned, before it starts pulling jobs.
func pinToCPU(cpu int, log *zap.Logger) {
	runtime.LockOSThread()

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpu)
	if err := unix.SchedSetaffinity(0, &mask); err != nil {
		log.Warn("failed to pin worker to cpu", zap.Int("cpu", cpu), zap.Error(err))
	}
}
