////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package services contains lock-free dispensers that hand out units of work,
// tickets or disjoint regions of a buffer, to concurrently running workers.
package services

import "sync/atomic"

// transition maps the value read from a cursor to the value that should
// replace it. ok is false once the cursor is exhausted, in which case nothing
// is written.
type transition func(current uint64) (next uint64, ok bool)

// advance is the compare-and-retry loop every dispenser in this package is
// built on: load the cursor, compute the successor, and commit it only if the
// cursor still holds the loaded value. A given cursor value can be consumed by
// at most one successful call. retries counts the lost races.
func advance(cursor *atomic.Uint64, step transition) (prev, next uint64, retries uint64, ok bool) {
	for {
		current := cursor.Load()
		candidate, more := step(current)
		if !more {
			return current, current, retries, false
		}
		if cursor.CompareAndSwap(current, candidate) {
			return current, candidate, retries, true
		}
		retries++
	}
}
