//go:build linux

package affinity

import "golang.org/x/sys/unix"

// pin restricts the calling thread's affinity mask to a single CPU.
// pid 0 targets the calling thread.
func pin(cpu int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	return unix.SchedSetaffinity(0, &set)
}
