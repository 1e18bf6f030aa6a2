// Package sim is an in-process engine.Engine backed by the Go heap. It follows the engine contract
// closely enough to stand in for the native engine in tests: one global lock, sized deallocation,
// hardening checks that terminate the process, and option strings in the engine's own format.
package sim

import (
	"fmt"
	"io"
	"os"
	"sync"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/scudo"
	"github.com/vkngwrapper/scudo/engine"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

const (
	// defaultMaxAllocationSize is used when Options.MaxAllocationSize is zero
	defaultMaxAllocationSize = 64 * datasize.GB
	// defaultQuarantineChunks is used when Options.QuarantineChunks is zero
	defaultQuarantineChunks = 1024
	// patternFillByte matches the byte the native engine uses for pattern_fill_contents
	patternFillByte = 0xAB
	// fatalExitCode is the status the default Fatal handler exits with, the same status as an abort
	fatalExitCode = 134
)

// Options contains optional settings when creating an Engine. It is valid to leave every field blank.
type Options struct {
	// MinAlignment is the engine's alignment floor. Defaults to the pointer width.
	MinAlignment uintptr
	// MaxAllocationSize is the largest request the engine will satisfy
	MaxAllocationSize datasize.ByteSize
	// QuarantineChunks is the number of recently freed addresses remembered for double free detection
	QuarantineChunks int

	// DefaultOptions is read at creation the way the native engine reads __scudo_default_options
	DefaultOptions string

	// Fatal is called when a heap invariant is violated. The default prints the violation to stderr and
	// exits the process. If Fatal returns, the engine panics with the same value.
	Fatal func(engine.FatalCorruption)
	// StatsOutput receives PrintStats output. Defaults to stderr.
	StatsOutput io.Writer
}

type chunk struct {
	// memory keeps the backing array reachable while the chunk is live
	memory []byte
	size   uintptr
}

// Engine is a Go-heap engine.Engine. The zero value is not usable; create one with New.
type Engine struct {
	logger  *slog.Logger
	options Options
	flags   flags

	// mutex is the global lock: Disable holds it, Allocate and Deallocate take it per call
	mutex sync.Mutex

	live            *swiss.Map[uintptr, *chunk]
	// quarantine counts the ring slots holding each freed address
	quarantine      *swiss.Map[uintptr, int]
	quarantineOrder []uintptr
	quarantineNext  int

	allocations   int
	deallocations int
	liveBytes     uintptr
}

var _ engine.Engine = &Engine{}

// New creates an Engine and applies options.DefaultOptions
func New(logger *slog.Logger, options Options) (*Engine, error) {
	if options.MinAlignment == 0 {
		options.MinAlignment = unsafe.Sizeof(uintptr(0))
	}
	if options.MaxAllocationSize == 0 {
		options.MaxAllocationSize = defaultMaxAllocationSize
	}
	if options.QuarantineChunks <= 0 {
		options.QuarantineChunks = defaultQuarantineChunks
	}
	if options.Fatal == nil {
		options.Fatal = exitOnCorruption
	}
	if options.StatsOutput == nil {
		options.StatsOutput = os.Stderr
	}

	flags, err := parseFlags(logger, options.DefaultOptions)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		logger:          logger,
		options:         options,
		flags:           flags,
		live:            swiss.NewMap[uintptr, *chunk](64),
		quarantine:      swiss.NewMap[uintptr, int](uint32(options.QuarantineChunks)),
		quarantineOrder: make([]uintptr, 0, options.QuarantineChunks),
	}

	logger.Debug("sim::New",
		slog.Uint64("MinAlignment", uint64(options.MinAlignment)),
		slog.String("MaxAllocationSize", options.MaxAllocationSize.HumanReadable()),
		slog.Bool("DeleteSizeMismatch", flags.deleteSizeMismatch),
		slog.Bool("MayReturnNull", flags.mayReturnNull),
	)

	return e, nil
}

func exitOnCorruption(corruption engine.FatalCorruption) {
	fmt.Fprintf(os.Stderr, "Scudo ERROR: %s\n", corruption.Error())
	os.Exit(fatalExitCode)
}

func (e *Engine) fatal(corruption engine.FatalCorruption) {
	e.logger.Error("heap corruption detected",
		slog.String("Kind", corruption.Kind.String()),
		slog.String("Address", fmt.Sprintf("%#x", corruption.Address)),
	)

	e.options.Fatal(corruption)
	panic(corruption)
}

func (e *Engine) MinAlignment() uintptr {
	return e.options.MinAlignment
}

func (e *Engine) Allocate(size, alignment uintptr) unsafe.Pointer {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if alignment < e.options.MinAlignment {
		alignment = e.options.MinAlignment
	}
	if err := scudo.CheckPow2(alignment, "alignment"); err != nil {
		e.logger.Debug("rejected allocation", slog.String("Reason", err.Error()))
		return nil
	}

	// The backing slice also carries the alignment slack, so both must fit under the limit
	limit := uintptr(e.options.MaxAllocationSize)
	if size > limit || alignment > limit-size {
		if e.flags.mayReturnNull {
			return nil
		}
		e.fatal(engine.FatalCorruption{
			Kind:     engine.CorruptionAllocationTooBig,
			Size:     size,
			Expected: limit,
		})
	}

	// Go heap objects do not move, so an aligned offset into the slice stays aligned for its lifetime
	memory := make([]byte, size+alignment)
	start := uintptr(unsafe.Pointer(unsafe.SliceData(memory)))
	offset := scudo.AlignUp(start, alignment) - start
	ptr := unsafe.Pointer(&memory[offset])
	address := start + offset

	if e.flags.patternFillContents && !e.flags.zeroContents {
		contents := memory[offset : offset+size]
		for i := range contents {
			contents[i] = patternFillByte
		}
	}

	e.live.Put(address, &chunk{memory: memory, size: size})

	e.allocations++
	e.liveBytes += size

	return ptr
}

func (e *Engine) Deallocate(ptr unsafe.Pointer, size, alignment uintptr) {
	if ptr == nil {
		return
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	address := uintptr(ptr)
	c, isLive := e.live.Get(address)
	if !isLive {
		e.fatal(e.classifyInvalidFree(address))
	}

	if e.flags.deleteSizeMismatch && size != c.size {
		e.fatal(engine.FatalCorruption{
			Kind:     engine.CorruptionDeleteSizeMismatch,
			Address:  address,
			Size:     size,
			Expected: c.size,
		})
	}

	e.live.Delete(address)
	e.remember(address)

	e.deallocations++
	e.liveBytes -= c.size
}

// classifyInvalidFree checks a pointer that is not a live chunk in the same order the native engine
// does: alignment first, then the chunk state, then the header.
func (e *Engine) classifyInvalidFree(address uintptr) engine.FatalCorruption {
	if address&(e.options.MinAlignment-1) != 0 {
		return engine.FatalCorruption{Kind: engine.CorruptionMisalignedPointer, Address: address}
	}

	if e.quarantine.Has(address) {
		return engine.FatalCorruption{Kind: engine.CorruptionDoubleFree, Address: address}
	}

	return engine.FatalCorruption{Kind: engine.CorruptionChunkHeader, Address: address}
}

// remember records a freed address, evicting the oldest one once the quarantine is full. An address
// that was reused and freed again holds several slots and stays quarantined until the newest is evicted.
func (e *Engine) remember(address uintptr) {
	if len(e.quarantineOrder) < e.options.QuarantineChunks {
		e.quarantineOrder = append(e.quarantineOrder, address)
	} else {
		e.forget(e.quarantineOrder[e.quarantineNext])
		e.quarantineOrder[e.quarantineNext] = address
		e.quarantineNext = (e.quarantineNext + 1) % e.options.QuarantineChunks
	}

	slots, _ := e.quarantine.Get(address)
	e.quarantine.Put(address, slots+1)
}

func (e *Engine) forget(address uintptr) {
	slots, _ := e.quarantine.Get(address)
	if slots <= 1 {
		e.quarantine.Delete(address)
		return
	}

	e.quarantine.Put(address, slots-1)
}

// Iterate visits live chunks in ascending address order. The caller must hold the engine disabled.
func (e *Engine) Iterate(base, size uintptr, visit engine.ChunkVisitor) {
	if size == 0 {
		return
	}

	addresses := make([]uintptr, 0, e.live.Count())
	e.live.Iter(func(address uintptr, _ *chunk) bool {
		if address >= base && address-base < size {
			addresses = append(addresses, address)
		}
		return false
	})
	slices.Sort(addresses)

	for _, address := range addresses {
		c, _ := e.live.Get(address)
		visit(address, c.size)
	}
}

func (e *Engine) Disable() {
	e.mutex.Lock()
}

func (e *Engine) Enable() {
	e.mutex.Unlock()
}

func (e *Engine) PrintStats() {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	fmt.Fprintf(e.options.StatsOutput, "Stats: SimEngine: %d allocations; %d deallocations; %d live chunks (%s)\n",
		e.allocations, e.deallocations, e.live.Count(), datasize.ByteSize(e.liveBytes).HumanReadable())
	fmt.Fprintf(e.options.StatsOutput, "Stats: Quarantine: %d of %d addresses remembered\n",
		e.quarantine.Count(), e.options.QuarantineChunks)
}
