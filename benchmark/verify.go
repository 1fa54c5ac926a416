////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package benchmark

import (
	"sort"

	"github.com/cznic/mathutil"
	"github.com/pkg/errors"
	"gitlab.com/elixxir/workqueue/services"
)

// CheckTiling returns an error unless the chunks, once sorted by their start,
// cover [0, length) with no gaps and no overlaps, every chunk is step long
// and only the last one may be shorter. The chunks are sorted in place.
func CheckTiling(chunks []services.Chunk, length, step uint64) error {
	if step == 0 {
		return errors.New("step must be at least 1")
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Begin() < chunks[j].Begin()
	})

	var cursor uint64
	for i, c := range chunks {
		switch {
		case i > 0 && c.Overlaps(chunks[i-1]):
			return errors.Errorf("chunk %s overlaps chunk %s", c, chunks[i-1])
		case c.Begin() < cursor:
			return errors.Errorf("chunk %s starts before the end of the "+
				"chunk before it at %d", c, cursor)
		case c.Begin() > cursor:
			return errors.Errorf("elements [%d, %d) were never handed out",
				cursor, c.Begin())
		}

		if c.End() > length {
			return errors.Errorf("chunk %s runs past the end of the "+
				"buffer at %d", c, length)
		}

		expected := mathutil.MinUint64(step, length-c.Begin())
		if c.Len() != expected {
			return errors.Errorf("chunk %d %s is %d long, expected %d",
				i, c, c.Len(), expected)
		}
		cursor = c.End()
	}

	if cursor != length {
		return errors.Errorf("elements [%d, %d) were never handed out",
			cursor, length)
	}

	return nil
}

// checkTickets returns an error unless the tickets received by all workers
// together are exactly 0 through total-1, each once.
func checkTickets(received [][]uint64, total uint64) error {
	seen := make([]bool, total)
	var count uint64

	for w, tickets := range received {
		for _, ticket := range tickets {
			if ticket >= total {
				return errors.Errorf("worker %d received ticket %d, "+
					"outside of [0, %d)", w, ticket, total)
			}
			if seen[ticket] {
				return errors.Errorf("ticket %d was dispensed twice", ticket)
			}
			seen[ticket] = true
			count++
		}
	}

	if count != total {
		return errors.Errorf("%d of %d tickets were never dispensed",
			total-count, total)
	}
	return nil
}
