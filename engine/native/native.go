//go:build cgo

// Package native binds the Scudo standalone hardened allocator through cgo. The engine's sources are
// compiled into this package from third_party/scudo/standalone (see scripts/fetch-scudo.sh), and a small
// C++ wrapper exports the sized C ABI that Engine calls.
//
// There is exactly one engine per process. Engine is a zero-size handle to it, and every Engine value
// refers to the same global state.
package native

/*
#cgo CXXFLAGS: -std=c++17 -fno-exceptions -fno-rtti -fvisibility=hidden -O2
#cgo CXXFLAGS: -I${SRCDIR}/../../third_party/scudo/standalone -I${SRCDIR}/../../third_party/scudo/standalone/include
#cgo amd64 CXXFLAGS: -msse4.2
#cgo arm64 CXXFLAGS: -march=armv8-a+crc
#cgo LDFLAGS: -lstdc++ -pthread

#include "wrapper.h"

extern void goScudoChunk(uintptr_t base, size_t size, void *arg);

static void scudo_iterate_go(uintptr_t base, size_t size, uintptr_t handle) {
	scudo_iterate(base, size, goScudoChunk, (void *)handle);
}
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"github.com/vkngwrapper/scudo/engine"
)

// Engine is the process-wide Scudo allocator
type Engine struct{}

var _ engine.Engine = Engine{}

func (Engine) MinAlignment() uintptr {
	return uintptr(C.SCUDO_MIN_ALIGN)
}

func (Engine) Allocate(size, alignment uintptr) unsafe.Pointer {
	return C.scudo_allocate(C.size_t(size), C.size_t(alignment))
}

func (Engine) Deallocate(ptr unsafe.Pointer, size, alignment uintptr) {
	C.scudo_deallocate(ptr, C.size_t(size), C.size_t(alignment))
}

// Iterate passes every live chunk in [base, base+size) to visit. The engine must be disabled by the
// caller. The engine's walk only records chunks; visit runs once the walk has returned to Go, so a
// panic or runtime.Goexit in visit never unwinds through engine frames.
func (Engine) Iterate(base, size uintptr, visit engine.ChunkVisitor) {
	state := &iteration{}
	handle := cgo.NewHandle(state)
	C.scudo_iterate_go(C.uintptr_t(base), C.size_t(size), C.uintptr_t(handle))
	handle.Delete()

	for _, c := range state.chunks {
		visit(c.base, c.size)
	}
}

func (Engine) Disable() {
	C.scudo_disable()
}

func (Engine) Enable() {
	C.scudo_enable()
}

// PrintStats writes the engine's statistics to stderr
func (Engine) PrintStats() {
	C.scudo_print_stats()
}
