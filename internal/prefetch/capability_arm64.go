//go:build !noasm && arm64

package prefetch

func init() {
	// PRFM belongs to the base A64 instruction set.
	hasHint = true
	initCapabilities()
}
