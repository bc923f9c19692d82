//go:build amd64

package spsc

import "unsafe"

// Implemented in prefetch_amd64.s.

//go:noescape
func prefetchRead(addr unsafe.Pointer)

//go:noescape
func prefetchWrite(addr unsafe.Pointer)
