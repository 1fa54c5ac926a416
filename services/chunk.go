////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package services

import "fmt"

// Chunk is the half-open range [begin, end) of a buffer handed to exactly one
// worker. Chunks granted by the same Partitioner never overlap.
type Chunk struct {
	begin uint64
	end   uint64
}

func NewChunk(begin, end uint64) Chunk {
	return Chunk{begin, end}
}

func (c Chunk) Begin() uint64 {
	return c.begin
}

func (c Chunk) End() uint64 {
	return c.end
}

func (c Chunk) Len() uint64 {
	return c.end - c.begin
}

// Overlaps reports whether the two chunks share at least one element.
func (c Chunk) Overlaps(o Chunk) bool {
	return c.begin < o.end && o.begin < c.end
}

func (c Chunk) String() string {
	return fmt.Sprintf("[%d, %d)", c.begin, c.end)
}
