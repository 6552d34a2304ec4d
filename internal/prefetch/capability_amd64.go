//go:build !noasm && amd64

package prefetch

import "golang.org/x/sys/cpu"

func init() {
	// PREFETCHT0 is part of SSE, always present on amd64; the check keeps
	// the decision next to the instruction set it depends on.
	hasHint = cpu.X86.HasSSE2
	initCapabilities()
}
