////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package conf turns the viper configuration into the parameters used by the
// workqueue commands.
package conf

import (
	"runtime"

	"github.com/cznic/mathutil"
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
	"gitlab.com/elixxir/workqueue/benchmark"
	"gitlab.com/elixxir/workqueue/services"
)

// MaxWorkers is the most goroutines a benchmark will spawn per scenario.
const MaxWorkers = 4096

// Logging holds the log settings shared by every command.
type Logging struct {
	Verbose bool
	// File the log is written to, stdout only when empty
	LogPath string
}

// NewLogging reads the log settings from the viper object.
func NewLogging(vip *viper.Viper) Logging {
	return Logging{
		Verbose: vip.GetBool("verbose"),
		LogPath: vip.GetString("logPath"),
	}
}

// Params holds the benchmark command's configuration.
// It should be constructed using a viper object
type Params struct {
	Benchmark Benchmark
}

// Benchmark contains the stress benchmark parameters.
type Benchmark struct {
	Workers    int
	Iterations int
	Tickets    uint64
	Length     int
	Step       int
	Strategy   services.Strategy

	// Where the YAML report is written, stdout when empty
	ReportPath string
}

// NewParams gets elements of the viper object and builds the params object.
// Unset keys fall back to their defaults. It returns an error if a value
// cannot be used.
func NewParams(vip *viper.Viper) (*Params, error) {
	vip.SetDefault("benchmark.workers", runtime.NumCPU())
	vip.SetDefault("benchmark.iterations", 100)
	vip.SetDefault("benchmark.tickets", 10000)
	vip.SetDefault("benchmark.length", 10000)
	vip.SetDefault("benchmark.step", 3)
	vip.SetDefault("benchmark.strategy", services.StrategyCompareAndSwap.String())

	params := Params{}
	b := &params.Benchmark

	b.Workers = vip.GetInt("benchmark.workers")
	if b.Workers > MaxWorkers {
		jww.WARN.Printf("Benchmark workers set to %d, capping at %d",
			b.Workers, MaxWorkers)
		b.Workers = mathutil.Min(b.Workers, MaxWorkers)
	}
	if b.Workers < 1 {
		return nil, errors.Errorf("benchmark.workers must be at least 1, "+
			"got %d", b.Workers)
	}

	b.Iterations = vip.GetInt("benchmark.iterations")
	if b.Iterations < 1 {
		return nil, errors.Errorf("benchmark.iterations must be at least "+
			"1, got %d", b.Iterations)
	}

	b.Tickets = vip.GetUint64("benchmark.tickets")

	b.Length = vip.GetInt("benchmark.length")
	if b.Length < 1 {
		return nil, errors.Errorf("benchmark.length must be at least 1, "+
			"got %d", b.Length)
	}

	b.Step = vip.GetInt("benchmark.step")
	if b.Step < 1 {
		return nil, errors.Errorf("benchmark.step must be at least 1, "+
			"got %d", b.Step)
	}

	var err error
	b.Strategy, err = services.ParseStrategy(vip.GetString("benchmark.strategy"))
	if err != nil {
		return nil, errors.WithMessage(err, "benchmark.strategy")
	}

	b.ReportPath = vip.GetString("benchmark.report")

	return &params, nil
}

// Config returns the benchmark parameters in the form the benchmark
// package runs them.
func (b Benchmark) Config() benchmark.Config {
	return benchmark.Config{
		Workers:    b.Workers,
		Iterations: b.Iterations,
		Tickets:    b.Tickets,
		Length:     b.Length,
		Step:       b.Step,
		Strategy:   b.Strategy,
	}
}
