//go:build !debug_scudo

package scudo

// DebugCheckLayout panics if the layout's alignment is not a power of two.
// This method no-ops unless the debug_scudo build tag is present.
func DebugCheckLayout(layout Layout) {
}
