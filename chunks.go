package scudo

import (
	"math"

	"github.com/vkngwrapper/scudo/engine"
)

// MapChunks calls visit for every live chunk whose base lies in [baseAddress, baseAddress+size).
//
// The engine is disabled for the whole enumeration, so every other allocation in the process waits until
// MapChunks returns. visit must not allocate or free through the engine or it will deadlock. If visit
// panics, the engine is still re-enabled before the panic continues.
func (a *Allocator) MapChunks(visit engine.ChunkVisitor, baseAddress uintptr, size uintptr) {
	a.engine.Disable()
	defer a.engine.Enable()

	a.engine.Iterate(baseAddress, size, visit)
}

// CountChunks returns the number of live chunks of exactly size bytes anywhere in the address space
func (a *Allocator) CountChunks(size uintptr) int {
	var count int
	a.MapChunks(func(_ uintptr, chunkSize uintptr) {
		if chunkSize == size {
			count++
		}
	}, 0, math.MaxUint)

	return count
}
