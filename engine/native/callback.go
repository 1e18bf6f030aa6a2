//go:build cgo

package native

/*
#include <stddef.h>
#include <stdint.h>
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"
)

type chunk struct {
	base uintptr
	size uintptr
}

// iteration collects the chunks reported during one Iterate call. It is reached from C through a
// cgo.Handle and only appends to Go memory, so no visitor code ever runs on top of engine frames.
type iteration struct {
	chunks []chunk
}

//export goScudoChunk
func goScudoChunk(base C.uintptr_t, size C.size_t, arg unsafe.Pointer) {
	state := cgo.Handle(uintptr(arg)).Value().(*iteration)
	state.chunks = append(state.chunks, chunk{base: uintptr(base), size: uintptr(size)})
}
