package scudo

import (
	"math"
	"strconv"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

type chunkRecord struct {
	base uintptr
	size uintptr
}

func printStatistics(json *jwriter.ObjectState, stats *DetailedStatistics) {
	json.Name("ChunkCount").Int(stats.ChunkCount)
	json.Name("ChunkBytes").Int(stats.ChunkBytes)

	if stats.ChunkCount > 0 {
		json.Name("ChunkSizeMin").Int(stats.ChunkSizeMin)
		json.Name("ChunkSizeMax").Int(stats.ChunkSizeMax)
	}
}

// BuildStatsString returns a JSON document describing every live chunk in the engine. When detailed is
// true, the address and size of each chunk is listed as well. Chunks are gathered while the engine is
// disabled; the document itself is written after the engine is re-enabled.
func (a *Allocator) BuildStatsString(detailed bool) string {
	var stats DetailedStatistics
	stats.Clear()

	var chunks []chunkRecord
	a.MapChunks(func(base uintptr, size uintptr) {
		stats.AddChunk(int(size))
		if detailed {
			chunks = append(chunks, chunkRecord{base: base, size: size})
		}
	}, 0, math.MaxUint)

	writer := jwriter.NewWriter()
	json := writer.Object()

	json.Name("MinAlignment").Int(int(a.engine.MinAlignment()))

	total := json.Name("Total").Object()
	printStatistics(&total, &stats)
	total.End()

	if detailed {
		chunkArray := json.Name("Chunks").Array()
		for _, chunk := range chunks {
			obj := chunkArray.Object()
			obj.Name("Address").String("0x" + strconv.FormatUint(uint64(chunk.base), 16))
			obj.Name("Size").Int(int(chunk.size))
			obj.End()
		}
		chunkArray.End()
	}

	json.End()

	return string(writer.Bytes())
}
