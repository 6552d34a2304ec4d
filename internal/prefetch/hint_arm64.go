// Copyright 2025 The Ordsearch Authors
// SPDX-License-Identifier: MIT

//go:build !noasm && arm64

package prefetch

// prefetchL1Keep issues PRFM PLDL1KEEP on addr.
func prefetchL1Keep(addr uintptr)

func hint(addr uintptr) {
	prefetchL1Keep(addr)
}
