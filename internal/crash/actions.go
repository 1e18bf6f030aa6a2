// Package crash holds deliberate heap misuse used to check that an engine terminates the process when
// its invariants are broken. Every action is expected to never return on a hardened engine.
package crash

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/scudo/engine"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const alignment = 16

// Action misuses e in one specific way
type Action func(e engine.Engine)

var actions = map[string]Action{
	"double_free":            DoubleFree,
	"misaligned_ptr":         MisalignedPointer,
	"corrupted_chunk_header": CorruptedChunkHeader,
	"delete_size_mismatch":   DeleteSizeMismatch,
}

// DoubleFree frees the same chunk twice
func DoubleFree(e engine.Engine) {
	ptr := e.Allocate(128, alignment)
	e.Deallocate(ptr, 128, alignment)
	e.Deallocate(ptr, 128, alignment)
}

// MisalignedPointer frees a pointer one byte past a chunk's base
func MisalignedPointer(e engine.Engine) {
	ptr := e.Allocate(128, alignment)
	e.Deallocate(unsafe.Add(ptr, 1), 128, alignment)
}

// CorruptedChunkHeader frees an aligned pointer just past the end of a chunk, where no header exists
func CorruptedChunkHeader(e engine.Engine) {
	ptr := e.Allocate(16, alignment)
	e.Deallocate(unsafe.Add(ptr, 16), 16, alignment)
}

// DeleteSizeMismatch frees a chunk with a size other than the one it was allocated with
func DeleteSizeMismatch(e engine.Engine) {
	ptr := e.Allocate(128, alignment)
	e.Deallocate(ptr, 64, alignment)
}

// Names lists the available actions in sorted order
func Names() []string {
	names := maps.Keys(actions)
	slices.Sort(names)
	return names
}

// Run performs the named action against e
func Run(e engine.Engine, name string) error {
	action, ok := actions[name]
	if !ok {
		return errors.Newf("could not find an action named %q", name)
	}

	action(e)
	return nil
}
