////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package benchmark runs concurrent stress scenarios against the dispensers
// in services and verifies their coverage guarantees.
package benchmark

import (
	"github.com/pkg/errors"
	"gitlab.com/elixxir/workqueue/internal/measure"
	"gitlab.com/elixxir/workqueue/services"
)

// Config holds the parameters of a benchmark run.
type Config struct {
	// Number of goroutines draining each dispenser
	Workers int
	// Number of times each scenario is repeated with a fresh dispenser
	Iterations int

	// Size of the ticket counter
	Tickets uint64

	// Length of the partitioned buffer and the size of each region
	Length   int
	Step     int
	Strategy services.Strategy

	// Receives a TagVerification event before and after every
	// verification pass. Nothing is recorded when nil.
	Metrics *measure.Metrics
}

// measure records tag on c.Metrics if one is set.
func (c Config) measure(tag string) {
	if c.Metrics != nil {
		c.Metrics.Measure(tag)
	}
}

// Validate returns an error describing the first unusable parameter.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Iterations < 1 {
		return errors.Errorf("iterations must be at least 1, got %d",
			c.Iterations)
	}
	if c.Length < 1 {
		return errors.Errorf("buffer length must be at least 1, got %d",
			c.Length)
	}
	if c.Step < 1 {
		return errors.Errorf("step must be at least 1, got %d", c.Step)
	}
	return nil
}
