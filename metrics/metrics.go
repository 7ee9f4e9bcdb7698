// Copyright 2016 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package metrics is a thin registry over github.com/rcrowley/go-metrics,
// exposing NewRegisteredXxx constructors so every component can register a
// named meter/timer/counter with one call and never touch the underlying
// registry directly.
package metrics

import (
	"time"

	gometrics "github.com/rcrowley/go-metrics"
)

// Enabled toggles whether new meters/timers/counters actually record;
// disabled ones are still safe to call (cheap no-op instances), letting a
// build keep metrics compiled in but dormant in production.
var Enabled = true

// Meter tracks the rate of an event, such as candidates announced.
type Meter interface {
	Mark(n int64)
	Count() int64
}

// Timer tracks durations of an operation, such as best-head-to-import
// latency.
type Timer interface {
	Update(d time.Duration)
	UpdateSince(start time.Time)
}

// Counter tracks a simple up/down count, such as the current size of the
// pending-candidate set.
type Counter interface {
	Inc(n int64)
	Dec(n int64)
	Clear()
	Count() int64
}

type nopMeter struct{}

func (nopMeter) Mark(int64) {}
func (nopMeter) Count() int64 { return 0 }

type nopTimer struct{}

func (nopTimer) Update(time.Duration) {}
func (nopTimer) UpdateSince(time.Time) {}

type nopCounter struct{}

func (nopCounter) Inc(int64)   {}
func (nopCounter) Dec(int64)   {}
func (nopCounter) Clear()      {}
func (nopCounter) Count() int64 { return 0 }

type meterWrapper struct{ m gometrics.Meter }

func (w meterWrapper) Mark(n int64)  { w.m.Mark(n) }
func (w meterWrapper) Count() int64  { return w.m.Count() }

type timerWrapper struct{ t gometrics.Timer }

func (w timerWrapper) Update(d time.Duration)    { w.t.Update(d) }
func (w timerWrapper) UpdateSince(start time.Time) { w.t.UpdateSince(start) }

type counterWrapper struct{ c gometrics.Counter }

func (w counterWrapper) Inc(n int64)   { w.c.Inc(n) }
func (w counterWrapper) Dec(n int64)   { w.c.Dec(n) }
func (w counterWrapper) Clear()        { w.c.Clear() }
func (w counterWrapper) Count() int64  { return w.c.Count() }

// NewRegisteredMeter creates and registers a new meter under name.
func NewRegisteredMeter(name string, r gometrics.Registry) Meter {
	if !Enabled {
		return nopMeter{}
	}
	if r == nil {
		r = gometrics.DefaultRegistry
	}
	return meterWrapper{gometrics.GetOrRegisterMeter(name, r)}
}

// NewRegisteredTimer creates and registers a new timer under name.
func NewRegisteredTimer(name string, r gometrics.Registry) Timer {
	if !Enabled {
		return nopTimer{}
	}
	if r == nil {
		r = gometrics.DefaultRegistry
	}
	return timerWrapper{gometrics.GetOrRegisterTimer(name, r)}
}

// NewRegisteredCounter creates and registers a new counter under name.
func NewRegisteredCounter(name string, r gometrics.Registry) Counter {
	if !Enabled {
		return nopCounter{}
	}
	if r == nil {
		r = gometrics.DefaultRegistry
	}
	return counterWrapper{gometrics.GetOrRegisterCounter(name, r)}
}
