//go:build darwin

package affinity

import (
	"runtime"
)

// NumCPU returns the number of logical CPUs available.
func NumCPU() int {
	return runtime.NumCPU()
}

// Pin locks the goroutine to an OS thread. CPU pinning by core index is
// not available on macOS, so this only provides the thread lock half of
// the guarantee.
func Pin(workerID int64) func() {
	runtime.LockOSThread()

	return func() {
		runtime.UnlockOSThread()
	}
}
