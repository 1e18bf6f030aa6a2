package scudo

import (
	"fmt"
	"math"

	"github.com/c2h5oh/datasize"
)

type Statistics struct {
	ChunkCount int
	ChunkBytes int
}

func (s *Statistics) Clear() {
	s.ChunkCount = 0
	s.ChunkBytes = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.ChunkCount += other.ChunkCount
	s.ChunkBytes += other.ChunkBytes
}

type DetailedStatistics struct {
	Statistics
	ChunkSizeMin int
	ChunkSizeMax int
}

func (s *DetailedStatistics) Clear() {
	s.Statistics.Clear()
	s.ChunkSizeMin = math.MaxInt
	s.ChunkSizeMax = 0
}

func (s *DetailedStatistics) AddChunk(size int) {
	s.ChunkCount++
	s.ChunkBytes += size

	if size < s.ChunkSizeMin {
		s.ChunkSizeMin = size
	}

	if size > s.ChunkSizeMax {
		s.ChunkSizeMax = size
	}
}

func (s *DetailedStatistics) AddDetailedStatistics(other *DetailedStatistics) {
	s.Statistics.AddStatistics(&other.Statistics)

	if other.ChunkSizeMin < s.ChunkSizeMin {
		s.ChunkSizeMin = other.ChunkSizeMin
	}

	if other.ChunkSizeMax > s.ChunkSizeMax {
		s.ChunkSizeMax = other.ChunkSizeMax
	}
}

func (s *DetailedStatistics) String() string {
	if s.ChunkCount == 0 {
		return "0 chunks"
	}

	return fmt.Sprintf("%d chunks, %s (min %s, max %s)",
		s.ChunkCount,
		datasize.ByteSize(s.ChunkBytes).HumanReadable(),
		datasize.ByteSize(s.ChunkSizeMin).HumanReadable(),
		datasize.ByteSize(s.ChunkSizeMax).HumanReadable(),
	)
}

// CalculateStatistics sums every live chunk in [baseAddress, baseAddress+size). The engine is disabled
// while the chunks are counted.
func (a *Allocator) CalculateStatistics(baseAddress uintptr, size uintptr) DetailedStatistics {
	var stats DetailedStatistics
	stats.Clear()

	a.MapChunks(func(_ uintptr, chunkSize uintptr) {
		stats.AddChunk(int(chunkSize))
	}, baseAddress, size)

	return stats
}
