// Copyright 2025 The Ordsearch Authors
// SPDX-License-Identifier: MIT

//go:build (!arm64 && !amd64) || noasm

package prefetch

// hint is a no-op: the portable build has no non-faulting prefetch, and a
// plain load could fault on a speculative address.
func hint(uintptr) {}
