////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package services

import (
	"sync"
	"testing"
)

// Tests that a single caller receives the tickets in descending order.
func TestTicketCounter_Dispense(t *testing.T) {
	c := NewTicketCounter(5)

	for expected := uint64(4); ; expected-- {
		ticket, ok := c.Dispense()
		if !ok {
			t.Fatalf("Counter exhausted early, expected ticket %d", expected)
		}
		if ticket != expected {
			t.Errorf("Dispense returned the wrong ticket"+
				"\n\texpected: %d\n\treceived: %d", expected, ticket)
		}
		if expected == 0 {
			break
		}
	}

	if _, ok := c.Dispense(); ok {
		t.Errorf("Dispense succeeded after every ticket was handed out")
	}
}

// Tests that an exhausted counter never hands out another ticket.
func TestTicketCounter_Dispense_Exhausted(t *testing.T) {
	c := NewTicketCounter(3)
	Drain[uint64](c)

	for i := 0; i < 1000; i++ {
		if ticket, ok := c.Dispense(); ok || ticket != 0 {
			t.Fatalf("Exhausted counter dispensed ticket %d on call %d",
				ticket, i)
		}
	}

	if !c.Exhausted() || c.Remaining() != 0 {
		t.Errorf("Counter does not report exhaustion: remaining %d",
			c.Remaining())
	}
}

// Tests that a counter built with no tickets starts exhausted.
func TestNewTicketCounter_Zero(t *testing.T) {
	c := NewTicketCounter(0)

	if _, ok := c.Dispense(); ok {
		t.Errorf("Empty counter dispensed a ticket")
	}
	if c.Total() != 0 {
		t.Errorf("Empty counter reports %d total tickets", c.Total())
	}
}

func TestTicketCounter_Remaining(t *testing.T) {
	c := NewTicketCounter(10)
	c.Dispense()
	c.Dispense()

	if c.Remaining() != 8 {
		t.Errorf("Remaining is not correct"+
			"\n\texpected: %d\n\treceived: %d", 8, c.Remaining())
	}
	if c.Total() != 10 {
		t.Errorf("Total is not correct"+
			"\n\texpected: %d\n\treceived: %d", 10, c.Total())
	}
}

// Tests that sequences returned by All share the counter instead of
// restarting it.
func TestTicketCounter_All_Shared(t *testing.T) {
	c := NewTicketCounter(10)

	var first []uint64
	for ticket := range c.All() {
		first = append(first, ticket)
		if len(first) == 4 {
			break
		}
	}

	var second []uint64
	for ticket := range c.All() {
		second = append(second, ticket)
	}

	if len(first) != 4 || len(second) != 6 {
		t.Fatalf("Sequences did not split the tickets"+
			"\n\texpected: 4 and 6\n\treceived: %d and %d",
			len(first), len(second))
	}
	if first[0] != 9 || second[0] != 5 || second[5] != 0 {
		t.Errorf("Second sequence did not resume where the first stopped"+
			"\n\tfirst: %v\n\tsecond: %v", first, second)
	}

	for range c.All() {
		t.Errorf("Sequence over an exhausted counter yielded a ticket")
	}
}

// Runs many goroutines against one counter and checks the union of what
// they received is exactly every ticket, each once.
func TestTicketCounter_Concurrent(t *testing.T) {
	const tickets = 10000
	const workers = 100
	iterations := 100
	if testing.Short() {
		iterations = 5
	}

	for it := 0; it < iterations; it++ {
		c := NewTicketCounter(tickets)
		results := make([][]uint64, workers)

		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for ticket := range c.All() {
					results[w] = append(results[w], ticket)
				}
			}(w)
		}
		wg.Wait()

		seen := make([]bool, tickets)
		count := 0
		for _, r := range results {
			for _, ticket := range r {
				if ticket >= tickets {
					t.Fatalf("Iteration %d: ticket %d out of range", it, ticket)
				}
				if seen[ticket] {
					t.Fatalf("Iteration %d: ticket %d dispensed twice",
						it, ticket)
				}
				seen[ticket] = true
				count++
			}
		}

		if count != tickets {
			t.Fatalf("Iteration %d: wrong number of tickets dispensed"+
				"\n\texpected: %d\n\treceived: %d", it, tickets, count)
		}
	}
}

func BenchmarkTicketCounter_Dispense(b *testing.B) {
	c := NewTicketCounter(uint64(b.N))
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c.Dispense()
		}
	})
}
