////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package services

import (
	"iter"
	"math"
	"sync/atomic"

	"github.com/cznic/mathutil"
	jww "github.com/spf13/jwalterweatherman"
)

// Region is a piece of a partitioned buffer owned by exactly one caller.
// Data aliases the buffer, but its capacity stops at the end of the region,
// so neither indexing nor append on Data can reach a neighbouring region.
type Region[T any] struct {
	// Zero based position of the region, Chunk.Begin() / step
	Index uint64
	Chunk Chunk
	Data  []T
}

// Partitioner carves a caller owned buffer into consecutive regions of step
// elements (the last one may be shorter) and hands each region out exactly
// once to whichever goroutine asks first. The granted regions never overlap
// and together cover the whole buffer.
//
// The caller keeps ownership of the buffer. It must outlive every granted
// region and must not be touched outside of granted regions while
// partitioning is in progress.
type Partitioner[T any] struct {
	buf      []T
	length   uint64
	step     uint64
	strategy Strategy

	// Offset of the first element that has not been handed out yet. Only
	// ever moves forward.
	next atomic.Uint64

	contention atomic.Uint64
}

// MaxFetchAddStep is the largest step a StrategyFetchAdd partitioner
// accepts. Callers that lose the race at exhaustion push the cursor past the
// end by up to one step each, and the cursor must never wrap around.
const MaxFetchAddStep = math.MaxUint32

// NewPartitioner builds a Partitioner over buf. It panics if step is less
// than one, buf is empty, or step exceeds MaxFetchAddStep under
// StrategyFetchAdd.
func NewPartitioner[T any](buf []T, step int, opts ...Option) *Partitioner[T] {
	if step < 1 {
		jww.FATAL.Panicf("Cannot partition with a step of %d, step must "+
			"be at least 1", step)
	}
	if len(buf) == 0 {
		jww.FATAL.Panicf("Cannot partition an empty buffer")
	}

	o := partitionerOptions{strategy: StrategyCompareAndSwap}
	for _, opt := range opts {
		opt(&o)
	}
	if o.strategy != StrategyCompareAndSwap && o.strategy != StrategyFetchAdd {
		jww.FATAL.Panicf("Unknown partition strategy %d", o.strategy)
	}
	if o.strategy == StrategyFetchAdd && uint64(step) > MaxFetchAddStep {
		jww.FATAL.Panicf("Cannot partition with a step of %d using %s, "+
			"step must be at most %d", step, o.strategy, uint64(MaxFetchAddStep))
	}

	p := &Partitioner[T]{
		buf:      buf,
		length:   uint64(len(buf)),
		step:     uint64(step),
		strategy: o.strategy,
	}

	jww.DEBUG.Printf("Created %s partitioner over %d elements with step %d "+
		"(%d chunks)", p.strategy, p.length, p.step, p.NumChunks())

	return p
}

// extend is the cursor transition for the compare-and-swap strategy.
func (p *Partitioner[T]) extend(current uint64) (uint64, bool) {
	if current >= p.length {
		return current, false
	}
	return mathutil.MinUint64(current+p.step, p.length), true
}

// Next claims the next region of the buffer. ok is false once every element
// has been handed out, and stays false forever after.
func (p *Partitioner[T]) Next() (r Region[T], ok bool) {
	var begin, end uint64

	switch p.strategy {
	case StrategyFetchAdd:
		// Once exhausted the cursor is left alone, so only calls racing
		// the final grant can move it past the end.
		if p.next.Load() >= p.length {
			return Region[T]{}, false
		}
		begin = p.next.Add(p.step) - p.step
		if begin >= p.length {
			return Region[T]{}, false
		}
		end = mathutil.MinUint64(begin+p.step, p.length)
	default:
		var retries uint64
		begin, end, retries, ok = advance(&p.next, p.extend)
		if retries > 0 {
			p.contention.Add(retries)
		}
		if !ok {
			return Region[T]{}, false
		}
	}

	return Region[T]{
		Index: begin / p.step,
		Chunk: NewChunk(begin, end),
		Data:  p.buf[begin:end:end],
	}, true
}

// All returns a lazy sequence of (index, data) pairs. Every sequence
// returned by All shares the partitioner's cursor: ranging over one of them
// consumes regions for all of them.
func (p *Partitioner[T]) All() iter.Seq2[uint64, []T] {
	return func(yield func(uint64, []T) bool) {
		for {
			r, ok := p.Next()
			if !ok || !yield(r.Index, r.Data) {
				return
			}
		}
	}
}

// Regions is All with the full Region, chunk bounds included.
func (p *Partitioner[T]) Regions() iter.Seq[Region[T]] {
	return Sequence[Region[T]](p)
}

func (p *Partitioner[T]) Len() uint64 {
	return p.length
}

func (p *Partitioner[T]) Step() uint64 {
	return p.step
}

func (p *Partitioner[T]) Strategy() Strategy {
	return p.strategy
}

// NumChunks is the number of regions the buffer is divided into.
func (p *Partitioner[T]) NumChunks() uint64 {
	return (p.length + p.step - 1) / p.step
}

// Remaining is a snapshot of how many elements have not been handed out.
func (p *Partitioner[T]) Remaining() uint64 {
	cursor := p.next.Load()
	if cursor >= p.length {
		return 0
	}
	return p.length - cursor
}

func (p *Partitioner[T]) Exhausted() bool {
	return p.Remaining() == 0
}

// Contention returns how many times a caller lost a race and had to retry.
// Always zero for StrategyFetchAdd.
func (p *Partitioner[T]) Contention() uint64 {
	return p.contention.Load()
}
