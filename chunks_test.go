package scudo_test

import (
	"encoding/json"
	"math"
	"strconv"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/scudo"
	"github.com/vkngwrapper/scudo/engine"
	"github.com/vkngwrapper/scudo/engine/mocks"
	"github.com/vkngwrapper/scudo/engine/sim"
	"go.uber.org/mock/gomock"
)

func TestMapChunksHoldsLockAroundIterate(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockEngine := mocks.NewMockEngine(ctrl)

	var visited []uintptr
	gomock.InOrder(
		mockEngine.EXPECT().Disable(),
		mockEngine.EXPECT().Iterate(uintptr(0x1000), uintptr(0x100), gomock.Any()).
			Do(func(base, size uintptr, visit engine.ChunkVisitor) {
				visit(0x1000, 32)
				visit(0x1040, 64)
			}),
		mockEngine.EXPECT().Enable(),
	)

	scudo.New(mockEngine).MapChunks(func(base uintptr, size uintptr) {
		visited = append(visited, base)
	}, 0x1000, 0x100)

	require.Equal(t, []uintptr{0x1000, 0x1040}, visited)
}

func TestMapChunksEnablesAfterPanic(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockEngine := mocks.NewMockEngine(ctrl)

	gomock.InOrder(
		mockEngine.EXPECT().Disable(),
		mockEngine.EXPECT().Iterate(uintptr(0), uintptr(math.MaxUint), gomock.Any()).
			Do(func(base, size uintptr, visit engine.ChunkVisitor) {
				visit(0x2000, 16)
			}),
		mockEngine.EXPECT().Enable(),
	)

	require.PanicsWithValue(t, "stop", func() {
		scudo.New(mockEngine).MapChunks(func(base uintptr, size uintptr) {
			panic("stop")
		}, 0, math.MaxUint)
	})
}

func TestMapChunksEmptyRange(t *testing.T) {
	alloc := simAllocator(t, sim.Options{})

	layout := scudo.Layout{Size: 128, Alignment: 16}
	ptr := alloc.Allocate(layout)
	defer alloc.Deallocate(ptr, layout)

	var visits int
	alloc.MapChunks(func(base uintptr, size uintptr) {
		visits++
	}, uintptr(ptr), 0)
	require.Zero(t, visits)

	alloc.MapChunks(func(base uintptr, size uintptr) {
		visits++
	}, uintptr(ptr)+1, 1)
	require.Zero(t, visits)
}

func TestMapChunksPanicReleasesSimLock(t *testing.T) {
	alloc := simAllocator(t, sim.Options{})

	layout := scudo.Layout{Size: 128, Alignment: 16}
	ptr := alloc.Allocate(layout)

	require.Panics(t, func() {
		alloc.MapChunks(func(base uintptr, size uintptr) {
			panic("visitor failed")
		}, 0, math.MaxUint)
	})

	alloc.Deallocate(ptr, layout)
	require.Zero(t, alloc.CountChunks(128))
}

func TestCalculateStatistics(t *testing.T) {
	alloc := simAllocator(t, sim.Options{})

	var layouts []scudo.Layout
	var ptrs []unsafe.Pointer
	for _, size := range []uintptr{16, 2048, 100} {
		layout := scudo.Layout{Size: size, Alignment: 16}
		layouts = append(layouts, layout)
		ptrs = append(ptrs, alloc.Allocate(layout))
	}

	stats := alloc.CalculateStatistics(0, math.MaxUint)
	require.Equal(t, 3, stats.ChunkCount)
	require.Equal(t, 2164, stats.ChunkBytes)
	require.Equal(t, 16, stats.ChunkSizeMin)
	require.Equal(t, 2048, stats.ChunkSizeMax)
	require.Equal(t, "3 chunks, 2.1 KB (min 16 B, max 2.0 KB)", stats.String())

	for i, ptr := range ptrs {
		alloc.Deallocate(ptr, layouts[i])
	}

	stats = alloc.CalculateStatistics(0, math.MaxUint)
	require.Equal(t, "0 chunks", stats.String())
}

func TestAddDetailedStatistics(t *testing.T) {
	var total, part scudo.DetailedStatistics
	total.Clear()
	part.Clear()

	total.AddChunk(64)
	part.AddChunk(8)
	part.AddChunk(512)
	total.AddDetailedStatistics(&part)

	require.Equal(t, 3, total.ChunkCount)
	require.Equal(t, 584, total.ChunkBytes)
	require.Equal(t, 8, total.ChunkSizeMin)
	require.Equal(t, 512, total.ChunkSizeMax)
}

type statsDocument struct {
	MinAlignment int
	Total        struct {
		ChunkCount   int
		ChunkBytes   int
		ChunkSizeMin *int
		ChunkSizeMax *int
	}
	Chunks []struct {
		Address string
		Size    int
	}
}

func TestBuildStatsString(t *testing.T) {
	alloc := simAllocator(t, sim.Options{MinAlignment: 16})

	var doc statsDocument
	require.NoError(t, json.Unmarshal([]byte(alloc.BuildStatsString(true)), &doc))
	require.Equal(t, 16, doc.MinAlignment)
	require.Zero(t, doc.Total.ChunkCount)
	require.Nil(t, doc.Total.ChunkSizeMin)
	require.Empty(t, doc.Chunks)

	layout := scudo.Layout{Size: 4242, Alignment: 16}
	ptr := alloc.Allocate(layout)
	defer alloc.Deallocate(ptr, layout)

	doc = statsDocument{}
	require.NoError(t, json.Unmarshal([]byte(alloc.BuildStatsString(true)), &doc))
	require.Equal(t, 1, doc.Total.ChunkCount)
	require.Equal(t, 4242, doc.Total.ChunkBytes)
	require.Equal(t, 4242, *doc.Total.ChunkSizeMax)
	require.Len(t, doc.Chunks, 1)
	require.Equal(t, 4242, doc.Chunks[0].Size)
	require.Equal(t, "0x"+strconv.FormatUint(uint64(uintptr(ptr)), 16), doc.Chunks[0].Address)

	doc = statsDocument{}
	require.NoError(t, json.Unmarshal([]byte(alloc.BuildStatsString(false)), &doc))
	require.Equal(t, 1, doc.Total.ChunkCount)
	require.Nil(t, doc.Chunks)
}
