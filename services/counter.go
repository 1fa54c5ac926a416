////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package services

import (
	"iter"
	"sync/atomic"

	jww "github.com/spf13/jwalterweatherman"
)

// TicketCounter dispenses the tickets count-1 down to 0, each exactly once,
// to any number of concurrent callers. Once the last ticket is out it stays
// exhausted.
type TicketCounter struct {
	remaining atomic.Uint64
	total     uint64

	// Number of lost compare-and-swap races across all callers
	contention atomic.Uint64
}

func NewTicketCounter(count uint64) *TicketCounter {
	c := &TicketCounter{total: count}
	c.remaining.Store(count)
	jww.DEBUG.Printf("Created ticket counter with %d tickets", count)
	return c
}

func decrement(current uint64) (uint64, bool) {
	if current == 0 {
		return 0, false
	}
	return current - 1, true
}

// Dispense hands out the next ticket. ok is false once the counter is
// exhausted.
func (c *TicketCounter) Dispense() (ticket uint64, ok bool) {
	_, ticket, retries, ok := advance(&c.remaining, decrement)
	if retries > 0 {
		c.contention.Add(retries)
	}
	if !ok {
		return 0, false
	}
	return ticket, true
}

// Next is Dispense under the Dispenser contract.
func (c *TicketCounter) Next() (uint64, bool) {
	return c.Dispense()
}

// All returns a lazy sequence over the shared counter. Every sequence
// returned by All drains the same tickets.
func (c *TicketCounter) All() iter.Seq[uint64] {
	return Sequence[uint64](c)
}

// Remaining is a snapshot of how many tickets are still undispensed.
func (c *TicketCounter) Remaining() uint64 {
	return c.remaining.Load()
}

func (c *TicketCounter) Total() uint64 {
	return c.total
}

func (c *TicketCounter) Exhausted() bool {
	return c.remaining.Load() == 0
}

// Contention returns how many times a caller lost a race and had to retry.
func (c *TicketCounter) Contention() uint64 {
	return c.contention.Load()
}
