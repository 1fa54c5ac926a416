////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package benchmark

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/elixxir/workqueue/internal/measure"
	"gopkg.in/yaml.v2"
)

// Report is the outcome of a full benchmark run.
type Report struct {
	Strategy  string            `yaml:"strategy"`
	Counter   *Result           `yaml:"counter"`
	Partition *Result           `yaml:"partition"`
	Durations map[string]string `yaml:"durations"`

	// Heap bytes allocated over the run
	AllocBytes uint64 `yaml:"allocBytes"`
}

// Run executes the counter and partition scenarios in turn and times each.
// It stops at the first verification failure or once ctx is done.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessage(err, "invalid benchmark config")
	}

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)

	metrics := new(measure.Metrics)
	cfg.Metrics = metrics
	report := &Report{Strategy: cfg.Strategy.String()}

	var err error
	metrics.Measure(measure.TagCounterStress)
	report.Counter, err = CounterStress(ctx, cfg)
	metrics.Measure(measure.TagCounterStress)
	if err != nil {
		return report, err
	}

	metrics.Measure(measure.TagPartitionStress)
	report.Partition, err = PartitionStress(ctx, cfg)
	metrics.Measure(measure.TagPartitionStress)
	if err != nil {
		return report, err
	}

	runtime.ReadMemStats(&after)
	report.AllocBytes = after.TotalAlloc - before.TotalAlloc

	report.Durations = make(map[string]string)
	for tag, d := range metrics.Durations() {
		report.Durations[tag] = d.String()
	}

	jww.INFO.Printf("Benchmark finished: %v", report.Durations)

	return report, nil
}

// YAML serialises the report.
func (r *Report) YAML() ([]byte, error) {
	out, err := yaml.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal benchmark report")
	}
	return out, nil
}
