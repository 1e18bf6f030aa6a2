// Package arrowalloc lets Apache Arrow allocate its buffers through a scudo.Allocator. Install swaps it
// in as memory.DefaultAllocator so every builder and array that does not name an allocator uses the
// hardened engine.
package arrowalloc

import (
	"unsafe"

	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/vkngwrapper/scudo"
)

// Alignment is the buffer alignment Arrow expects from its allocators
const Alignment = 64

// Allocator implements memory.Allocator on top of a scudo.Allocator. Slices it returns are backed by
// engine memory, so they must be handed back through Free or Reallocate and never retained after that.
type Allocator struct {
	alloc *scudo.Allocator
}

var _ memory.Allocator = &Allocator{}

// New creates an Allocator that allocates through alloc
func New(alloc *scudo.Allocator) *Allocator {
	return &Allocator{alloc: alloc}
}

// layout returns the engine request backing a slice of size bytes. Empty slices still get a one-byte
// chunk so that Free can find the chunk from the slice's data pointer.
func layout(size int) scudo.Layout {
	return scudo.Layout{Size: uintptr(max(size, 1)), Alignment: Alignment}
}

func (a *Allocator) Allocate(size int) []byte {
	request := layout(size)
	ptr := a.alloc.AllocateZeroed(request)
	if ptr == nil {
		panic("arrowalloc: out of memory")
	}

	return unsafe.Slice((*byte)(ptr), request.Size)[:size]
}

func (a *Allocator) Reallocate(size int, b []byte) []byte {
	if cap(b) == 0 {
		return a.Allocate(size)
	}

	request := layout(size)
	oldLayout := scudo.Layout{Size: uintptr(cap(b)), Alignment: Alignment}
	ptr := a.alloc.Reallocate(unsafe.Pointer(unsafe.SliceData(b)), oldLayout, request.Size)
	if ptr == nil {
		panic("arrowalloc: out of memory")
	}

	buffer := unsafe.Slice((*byte)(ptr), request.Size)
	if request.Size > oldLayout.Size {
		clear(buffer[oldLayout.Size:])
	}

	return buffer[:size]
}

func (a *Allocator) Free(b []byte) {
	if cap(b) == 0 {
		return
	}

	a.alloc.Deallocate(unsafe.Pointer(unsafe.SliceData(b)), scudo.Layout{Size: uintptr(cap(b)), Alignment: Alignment})
}

// Install makes alloc Arrow's default allocator and returns the allocator it replaced
func Install(alloc memory.Allocator) memory.Allocator {
	previous := memory.DefaultAllocator
	memory.DefaultAllocator = alloc
	return previous
}
