////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package benchmark

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/elixxir/workqueue/internal/measure"
	"gitlab.com/elixxir/workqueue/services"
)

// Result summarises one scenario over all of its iterations.
type Result struct {
	Name       string        `yaml:"name"`
	Iterations int           `yaml:"iterations"`
	Workers    int           `yaml:"workers"`
	Units      uint64        `yaml:"unitsPerIteration"`
	Contention uint64        `yaml:"contention"`
	Elapsed    time.Duration `yaml:"-"`
}

// spawn runs fn on n goroutines and returns what each of them produced once
// all have finished.
func spawn[V any](n int, fn func(worker int) V) []V {
	results := make([]V, n)
	var wg sync.WaitGroup
	for w := 0; w < n; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			results[w] = fn(w)
		}(w)
	}
	wg.Wait()
	return results
}

// CounterStress repeatedly drains a fresh ticket counter from cfg.Workers
// goroutines and checks every ticket was dispensed exactly once.
func CounterStress(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res := &Result{
		Name:    "counter",
		Workers: cfg.Workers,
		Units:   cfg.Tickets,
	}
	start := time.Now()

	for it := 0; it < cfg.Iterations; it++ {
		if err := ctx.Err(); err != nil {
			return res, errors.Wrapf(err, "counter stress stopped after "+
				"%d iterations", it)
		}

		c := services.NewTicketCounter(cfg.Tickets)
		received := spawn(cfg.Workers, func(int) []uint64 {
			return services.Drain[uint64](c)
		})

		cfg.measure(measure.TagVerification)
		err := checkTickets(received, cfg.Tickets)
		cfg.measure(measure.TagVerification)
		if err != nil {
			return res, errors.WithMessagef(err, "iteration %d", it)
		}

		res.Iterations++
		res.Contention += c.Contention()
		jww.DEBUG.Printf("Counter iteration %d: %d tickets, %d retries",
			it, cfg.Tickets, c.Contention())
	}

	res.Elapsed = time.Since(start)
	jww.INFO.Printf("Counter stress passed: %d iterations of %d tickets "+
		"over %d workers in %s", res.Iterations, cfg.Tickets, cfg.Workers,
		res.Elapsed)

	return res, nil
}

// cell is one element of the partitioned buffer. value is the element's
// position, owner is written by the worker holding the region.
type cell struct {
	value uint64
	owner int
}

type grant struct {
	chunk services.Chunk
	first uint64
}

// PartitionStress repeatedly partitions a fresh buffer of cfg.Length
// elements among cfg.Workers goroutines. Each worker records the first
// element of every region it is granted and stamps every element of the
// region as its own. The regions must tile the buffer, every first element
// must be a multiple of the step, and every element must carry the stamp of
// the worker that was granted it.
func PartitionStress(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	length := uint64(cfg.Length)
	step := uint64(cfg.Step)
	res := &Result{
		Name:    "partition-" + cfg.Strategy.String(),
		Workers: cfg.Workers,
		Units:   (length + step - 1) / step,
	}
	start := time.Now()

	for it := 0; it < cfg.Iterations; it++ {
		if err := ctx.Err(); err != nil {
			return res, errors.Wrapf(err, "partition stress stopped after "+
				"%d iterations", it)
		}

		buf := make([]cell, cfg.Length)
		for i := range buf {
			buf[i].value = uint64(i)
		}

		p := services.NewPartitioner(buf, cfg.Step,
			services.WithStrategy(cfg.Strategy))
		received := spawn(cfg.Workers, func(w int) []grant {
			var grants []grant
			for r := range p.Regions() {
				grants = append(grants, grant{r.Chunk, r.Data[0].value})
				for i := range r.Data {
					r.Data[i].owner = w + 1
				}
			}
			return grants
		})

		cfg.measure(measure.TagVerification)
		err := checkGrants(buf, received, length, step)
		cfg.measure(measure.TagVerification)
		if err != nil {
			return res, errors.WithMessagef(err, "iteration %d", it)
		}

		res.Iterations++
		res.Contention += p.Contention()
		jww.DEBUG.Printf("Partition iteration %d: %d regions, %d retries",
			it, res.Units, p.Contention())
	}

	res.Elapsed = time.Since(start)
	jww.INFO.Printf("Partition stress (%s) passed: %d iterations of %d "+
		"elements in steps of %d over %d workers in %s", cfg.Strategy,
		res.Iterations, length, step, cfg.Workers, res.Elapsed)

	return res, nil
}

func checkGrants(buf []cell, received [][]grant, length, step uint64) error {
	var chunks []services.Chunk
	seen := make(map[uint64]bool)

	for w, grants := range received {
		for _, g := range grants {
			if g.first%step != 0 {
				return errors.Errorf("worker %d received a region starting "+
					"at %d, not a multiple of %d", w, g.first, step)
			}
			if g.first != g.chunk.Begin() {
				return errors.Errorf("worker %d received region %s whose "+
					"first element is %d", w, g.chunk, g.first)
			}
			if seen[g.first] {
				return errors.Errorf("region starting at %d was granted "+
					"twice", g.first)
			}
			seen[g.first] = true

			for i := g.chunk.Begin(); i < g.chunk.End(); i++ {
				if buf[i].owner != w+1 {
					return errors.Errorf("element %d of region %s granted "+
						"to worker %d was written by worker %d", i, g.chunk,
						w, buf[i].owner-1)
				}
			}
			chunks = append(chunks, g.chunk)
		}
	}

	return CheckTiling(chunks, length, step)
}
