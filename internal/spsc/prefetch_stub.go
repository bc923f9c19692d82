//go:build !amd64

package spsc

import "unsafe"

// Prefetch is a hint, never a requirement: without the intrinsic these
// compile to nothing and the Prefetch layouts behave identically to
// the NoPrefetch ones.

func prefetchRead(addr unsafe.Pointer) {}

func prefetchWrite(addr unsafe.Pointer) {}
