// Package engine describes the boundary between this module and a hardened allocator engine. The engine
// owns all allocator state (size classes, quarantine, statistics) for the lifetime of the process and
// provides its own synchronization; consumers only call into it.
package engine

//go:generate mockgen -destination=mocks/engine.go -package=mocks github.com/vkngwrapper/scudo/engine Engine

import (
	"fmt"
	"unsafe"
)

// ChunkVisitor is called once for each live chunk reported by Engine.Iterate. The visitor runs while the
// engine is disabled, so it must not allocate or free memory through the engine: doing so deadlocks on
// the engine's global lock. Allocations on the Go heap are fine.
type ChunkVisitor func(base uintptr, size uintptr)

// Engine is the narrow C-style contract of a hardened allocator. Implementations do not track layouts
// on behalf of the caller: Deallocate must receive the same size and alignment that were passed to the
// matching Allocate call.
type Engine interface {
	// MinAlignment returns the smallest alignment the engine accepts. Requesting less is undefined
	// behavior in the engine's own contract.
	MinAlignment() uintptr

	// Allocate returns a block of at least size bytes aligned to alignment, or nil on failure.
	Allocate(size, alignment uintptr) unsafe.Pointer
	// Deallocate returns a block to the engine. The engine decides what freeing nil means.
	Deallocate(ptr unsafe.Pointer, size, alignment uintptr)

	// Iterate calls visit for every live chunk whose base lies in [base, base+size). The caller must
	// hold the engine disabled for the whole call. visit always runs on Go frames, so a panic or
	// runtime.Goexit in visit leaves Iterate like any other Go call.
	Iterate(base, size uintptr, visit ChunkVisitor)

	// Disable acquires the engine's global lock, pausing every other allocation in the process.
	Disable()
	// Enable releases the lock acquired by Disable.
	Enable()

	// PrintStats writes the engine's human-readable statistics to its diagnostic stream.
	PrintStats()
}

// CorruptionKind identifies which heap invariant an engine found broken.
type CorruptionKind uint32

const (
	// CorruptionUnknown is the zero value and never reported by an engine
	CorruptionUnknown CorruptionKind = iota
	CorruptionDoubleFree
	CorruptionMisalignedPointer
	CorruptionChunkHeader
	CorruptionDeleteSizeMismatch
	CorruptionAllocationTooBig
)

var corruptionKindMapping = map[CorruptionKind]string{
	CorruptionUnknown:            "unknown heap corruption at address",
	CorruptionDoubleFree:         "invalid chunk state when deallocating address (double free)",
	CorruptionMisalignedPointer:  "misaligned pointer when deallocating address",
	CorruptionChunkHeader:        "corrupted chunk header at address",
	CorruptionDeleteSizeMismatch: "invalid sized delete when deallocating address",
	CorruptionAllocationTooBig:   "requested allocation size exceeds maximum supported size",
}

func (k CorruptionKind) String() string {
	return corruptionKindMapping[k]
}

// FatalCorruption describes a heap invariant violation. It is a fatal error class, distinct from
// allocation failure: engines never return it to the caller. They report it on the diagnostic stream
// and terminate the process, and nothing in this module catches or softens that termination.
type FatalCorruption struct {
	Kind    CorruptionKind
	Address uintptr
	// Size and Expected are filled in for size-related violations.
	Size     uintptr
	Expected uintptr
}

func (f FatalCorruption) Error() string {
	switch f.Kind {
	case CorruptionDeleteSizeMismatch:
		return fmt.Sprintf("%s %#x (%d vs %d)", f.Kind, f.Address, f.Size, f.Expected)
	case CorruptionAllocationTooBig:
		return fmt.Sprintf("%s (%d > %d)", f.Kind, f.Size, f.Expected)
	}

	return fmt.Sprintf("%s %#x", f.Kind, f.Address)
}
