// Package scudo adapts a hardened allocator engine to Go's allocation model. An Allocator accepts
// size and alignment pairs, raises the alignment to the engine's floor, and forwards the request to the
// engine's raw entry points. It also provides a safe way to enumerate the engine's live chunks for
// diagnostics and tests.
package scudo

import (
	"unsafe"

	"github.com/vkngwrapper/scudo/engine"
)

// Layout is the size and alignment of one allocation. Deallocate must receive the same Layout that was
// passed to Allocate.
type Layout struct {
	Size      uintptr
	Alignment uintptr
}

// NewLayout builds a Layout, returning a wrapped PowerOfTwoError if alignment is not a power of two
func NewLayout(size, alignment uintptr) (Layout, error) {
	if err := CheckPow2(alignment, "alignment"); err != nil {
		return Layout{}, err
	}

	return Layout{Size: size, Alignment: alignment}, nil
}

// Allocator forwards allocations to a hardened engine. It holds no state of its own: the engine owns
// every allocation and synchronizes internally, so a single Allocator may be shared by any number of
// goroutines.
type Allocator struct {
	engine engine.Engine
}

// New creates an Allocator that allocates through e
func New(e engine.Engine) *Allocator {
	return &Allocator{engine: e}
}

// EffectiveAlignment returns the alignment that Allocate and Deallocate hand to the engine for a
// requested alignment.
func (a *Allocator) EffectiveAlignment(alignment uintptr) uintptr {
	return EffectiveAlignment(alignment, a.engine.MinAlignment())
}

// Allocate returns a block described by layout, or nil if the engine could not satisfy the request.
// Failure is not retried or logged; the caller decides how to handle it.
func (a *Allocator) Allocate(layout Layout) unsafe.Pointer {
	DebugCheckLayout(layout)

	return a.engine.Allocate(layout.Size, a.EffectiveAlignment(layout.Alignment))
}

// AllocateZeroed is Allocate followed by clearing the returned block.
func (a *Allocator) AllocateZeroed(layout Layout) unsafe.Pointer {
	ptr := a.Allocate(layout)
	if ptr != nil && layout.Size > 0 {
		clear(unsafe.Slice((*byte)(ptr), layout.Size))
	}

	return ptr
}

// Deallocate returns ptr to the engine. layout must be the one ptr was allocated with. A nil ptr is
// forwarded as-is; the engine defines what freeing nil means.
func (a *Allocator) Deallocate(ptr unsafe.Pointer, layout Layout) {
	a.engine.Deallocate(ptr, layout.Size, a.EffectiveAlignment(layout.Alignment))
}

// Reallocate moves the block at ptr, allocated with layout, into a new block of newSize bytes with the
// same alignment. The first min(layout.Size, newSize) bytes are preserved. On failure nil is returned and
// the original block is left untouched and still owned by the caller.
func (a *Allocator) Reallocate(ptr unsafe.Pointer, layout Layout, newSize uintptr) unsafe.Pointer {
	newLayout := Layout{Size: newSize, Alignment: layout.Alignment}
	newPtr := a.Allocate(newLayout)
	if newPtr == nil {
		return nil
	}

	if count := min(layout.Size, newSize); count > 0 {
		copy(unsafe.Slice((*byte)(newPtr), count), unsafe.Slice((*byte)(ptr), count))
	}
	a.Deallocate(ptr, layout)

	return newPtr
}

// PrintStats asks the engine to write its statistics to the process's diagnostic stream.
func (a *Allocator) PrintStats() {
	a.engine.PrintStats()
}
