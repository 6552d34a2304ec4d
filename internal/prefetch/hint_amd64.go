// Copyright 2025 The Ordsearch Authors
// SPDX-License-Identifier: MIT

//go:build !noasm && amd64

package prefetch

// prefetchT0 issues PREFETCHT0 on addr.
func prefetchT0(addr uintptr)

func hint(addr uintptr) {
	prefetchT0(addr)
}
