////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package conf

import (
	"bytes"
	"reflect"
	"runtime"
	"testing"

	"github.com/spf13/viper"
	"gitlab.com/elixxir/workqueue/benchmark"
	"gitlab.com/elixxir/workqueue/services"
)

const testYAML = `
verbose: true
logPath: "/tmp/workqueue.log"
benchmark:
  workers: 12
  iterations: 7
  tickets: 500
  length: 11
  step: 4
  strategy: fetchadd
  report: "report.yaml"
`

func readViper(t *testing.T, config string) *viper.Viper {
	vip := viper.New()
	vip.SetConfigType("yaml")
	if err := vip.ReadConfig(bytes.NewBufferString(config)); err != nil {
		t.Fatalf("Failed to read config into viper: %+v", err)
	}
	return vip
}

func TestNewParams(t *testing.T) {
	params, err := NewParams(readViper(t, testYAML))
	if err != nil {
		t.Fatalf("Failed in unmarshaling from viper object: %+v", err)
	}

	expected := Params{
		Benchmark: Benchmark{
			Workers:    12,
			Iterations: 7,
			Tickets:    500,
			Length:     11,
			Step:       4,
			Strategy:   services.StrategyFetchAdd,
			ReportPath: "report.yaml",
		},
	}

	if !reflect.DeepEqual(expected, *params) {
		t.Errorf("Params value does not match expected value"+
			"\n\texpected: %+v\n\treceived: %+v", expected, *params)
	}
}

func TestNewLogging(t *testing.T) {
	logging := NewLogging(readViper(t, testYAML))

	expected := Logging{Verbose: true, LogPath: "/tmp/workqueue.log"}
	if logging != expected {
		t.Errorf("Logging value does not match expected value"+
			"\n\texpected: %+v\n\treceived: %+v", expected, logging)
	}

	if logging = NewLogging(viper.New()); logging != (Logging{}) {
		t.Errorf("Logging of an empty config is not the zero value: %+v",
			logging)
	}
}

// Tests that unset keys take their defaults.
func TestNewParams_Defaults(t *testing.T) {
	params, err := NewParams(viper.New())
	if err != nil {
		t.Fatalf("NewParams failed on an empty viper: %+v", err)
	}

	expected := Benchmark{
		Workers:    runtime.NumCPU(),
		Iterations: 100,
		Tickets:    10000,
		Length:     10000,
		Step:       3,
		Strategy:   services.StrategyCompareAndSwap,
	}

	if !reflect.DeepEqual(expected, params.Benchmark) {
		t.Errorf("Default params do not match"+
			"\n\texpected: %+v\n\treceived: %+v", expected, params.Benchmark)
	}
}

func TestNewParams_CapsWorkers(t *testing.T) {
	vip := viper.New()
	vip.Set("benchmark.workers", MaxWorkers*2)

	params, err := NewParams(vip)
	if err != nil {
		t.Fatalf("NewParams failed: %+v", err)
	}
	if params.Benchmark.Workers != MaxWorkers {
		t.Errorf("Workers were not capped"+
			"\n\texpected: %d\n\treceived: %d", MaxWorkers,
			params.Benchmark.Workers)
	}
}

func TestNewParams_Invalid(t *testing.T) {
	tests := map[string]interface{}{
		"benchmark.workers":    0,
		"benchmark.iterations": 0,
		"benchmark.length":     -1,
		"benchmark.step":       0,
		"benchmark.strategy":   "spinlock",
	}

	for key, value := range tests {
		vip := viper.New()
		vip.Set(key, value)
		if _, err := NewParams(vip); err == nil {
			t.Errorf("NewParams accepted %s = %v", key, value)
		}
	}
}

func TestBenchmark_Config(t *testing.T) {
	b := Benchmark{Workers: 2, Iterations: 3, Tickets: 4, Length: 5, Step: 6,
		Strategy: services.StrategyFetchAdd, ReportPath: "x"}

	expected := benchmark.Config{Workers: 2, Iterations: 3, Tickets: 4,
		Length: 5, Step: 6, Strategy: services.StrategyFetchAdd}

	if cfg := b.Config(); cfg != expected {
		t.Errorf("Config did not copy the parameters"+
			"\n\texpected: %+v\n\treceived: %+v", expected, cfg)
	}
}
