//go:build (!amd64 && !arm64) || noasm

package prefetch

func init() {
	hasHint = false
	initCapabilities()
}
