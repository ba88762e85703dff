package bytehuff

import (
	"sync"
)

// minParallelChunk is the smallest chunk worth handing to its own goroutine.
const minParallelChunk = 64 << 10

// FrequencyTable counts the occurrences of each Symbol in some input.
type FrequencyTable struct {
	counts [NumSymbols]uint64
}

// CountFrequencies returns the FrequencyTable for data.  Empty input yields
// an empty table, from which no tree can be built.
func CountFrequencies(data []byte) *FrequencyTable {
	ft := new(FrequencyTable)
	ft.Add(data)
	return ft
}

// CountFrequenciesParallel is like CountFrequencies, but splits data into up
// to workers chunks which are counted concurrently.  The partial tables are
// merged on the calling goroutine.
func CountFrequenciesParallel(data []byte, workers int) *FrequencyTable {
	if workers > len(data)/minParallelChunk {
		workers = len(data) / minParallelChunk
	}
	if workers <= 1 {
		return CountFrequencies(data)
	}

	chunkSize := (len(data) + workers - 1) / workers
	partials := make([]FrequencyTable, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > len(data) {
			end = len(data)
		}
		wg.Add(1)
		go func(ft *FrequencyTable, chunk []byte) {
			defer wg.Done()
			ft.Add(chunk)
		}(&partials[i], data[start:end])
	}
	wg.Wait()

	ft := new(FrequencyTable)
	for i := range partials {
		ft.Merge(&partials[i])
	}
	return ft
}

// Add counts every byte of data into the table.
func (ft *FrequencyTable) Add(data []byte) {
	for _, b := range data {
		ft.counts[b]++
	}
}

// Merge adds the counts of other into the table.
func (ft *FrequencyTable) Merge(other *FrequencyTable) {
	for symbol := range ft.counts {
		ft.counts[symbol] += other.counts[symbol]
	}
}

// Count returns the number of occurrences of symbol.
func (ft *FrequencyTable) Count(symbol Symbol) uint64 {
	return ft.counts[symbol]
}

// Total returns the sum of all counts, i.e. the length of the input.
func (ft *FrequencyTable) Total() uint64 {
	var sum uint64
	for _, count := range ft.counts {
		sum += count
	}
	return sum
}

// Len returns the number of distinct symbols seen.
func (ft *FrequencyTable) Len() int {
	var n int
	for _, count := range ft.counts {
		if count != 0 {
			n++
		}
	}
	return n
}

// Weighted lists the symbols seen, in ascending Symbol order, paired with
// their counts.  This is the insertion order used by Encode.
func (ft *FrequencyTable) Weighted() []WeightedSymbol {
	out := make([]WeightedSymbol, 0, ft.Len())
	for symbol, count := range ft.counts {
		if count != 0 {
			out = append(out, WeightedSymbol{Symbol(symbol), count})
		}
	}
	return out
}
