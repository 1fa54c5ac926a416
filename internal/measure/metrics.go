////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package measure

// metrics.go contains the metrics object and its methods

import (
	"sync"
	"time"
)

// Metrics structure holds the list of measured events for a run. The RWMutex
// prevents two threads from writing to the list at the same time.
type Metrics struct {
	Events []Metric
	sync.RWMutex
}

// Metric structure holds a single measurement, which contains a tag and a
// timestamp from when the measurement was taken.
type Metric struct {
	Tag       string
	Timestamp time.Time
}

// Measure creates a new Metric object and appends it to the Metrics's event
// list. The Metric object is created from the specified tag and a timestamp
// created at the time of function call. The timestamp is returned.
func (ms *Metrics) Measure(tag string) time.Time {
	metric := Metric{
		Tag:       tag,
		Timestamp: time.Now(),
	}

	ms.Lock()
	ms.Events = append(ms.Events, metric)
	ms.Unlock()

	return metric.Timestamp
}

// GetEvents returns a copy of the Events array.
func (ms *Metrics) GetEvents() []Metric {
	ms.RLock()
	defer ms.RUnlock()
	metricsEvents := make([]Metric, len(ms.Events))

	copy(metricsEvents, ms.Events)

	return metricsEvents
}

// Durations folds the event list into the total time spent under each tag.
//
// Events of different tags may be interleaved, so events are paired per
// tag: the first event of a tag opens an interval and the next one with the
// same tag closes it. An interval that is still open is not counted.
func (ms *Metrics) Durations() map[string]time.Duration {
	events := ms.GetEvents()
	open := make(map[string]time.Time)
	durations := make(map[string]time.Duration)

	for _, e := range events {
		start, ok := open[e.Tag]
		if ok {
			durations[e.Tag] += e.Timestamp.Sub(start)
			delete(open, e.Tag)
		} else {
			open[e.Tag] = e.Timestamp
		}
	}

	return durations
}
