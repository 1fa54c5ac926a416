////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package services

import (
	"strings"

	"github.com/pkg/errors"
)

// Strategy selects how a Partitioner advances its cursor.
type Strategy uint8

const (
	// StrategyCompareAndSwap commits each region with a compare-and-swap
	// retry loop. The cursor never moves past the end of the buffer.
	StrategyCompareAndSwap Strategy = iota
	// StrategyFetchAdd claims regions with a single atomic add. It never
	// retries; callers racing the final region may push the cursor past the
	// end of the buffer by one step each, calls after exhaustion do not.
	StrategyFetchAdd
)

func (s Strategy) String() string {
	switch s {
	case StrategyCompareAndSwap:
		return "cas"
	case StrategyFetchAdd:
		return "fetchadd"
	default:
		return "unknown"
	}
}

// ParseStrategy returns the Strategy with the given name, as produced by
// Strategy.String.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cas":
		return StrategyCompareAndSwap, nil
	case "fetchadd", "fetch-add":
		return StrategyFetchAdd, nil
	default:
		return 0, errors.Errorf("unknown partition strategy %q", name)
	}
}

type partitionerOptions struct {
	strategy Strategy
}

// Option configures a Partitioner at construction.
type Option func(*partitionerOptions)

func WithStrategy(s Strategy) Option {
	return func(o *partitionerOptions) {
		o.strategy = s
	}
}
