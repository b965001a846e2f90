/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package pps

import (
	"fmt"
	"io"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// StatsServer is where the generator reports its counters.
type StatsServer interface {
	SetCounter(key string, val int64)
	UpdateCounterBy(key string, count int64)
}

// Generator drives one PPS output channel. It owns the pin, the deadline
// timer and the calibration state, and rearms itself at the end of every
// firing. All mutable timing state has a single writer, the timer callback;
// channels never share state, so multiple generators can run side by side.
type Generator struct {
	cfg   ChannelConfig
	pin   Pin
	clock Clock
	stats StatsServer

	section Section
	timer   deadlineTimer

	// instrTime is the smoothed cost of one pin write, ns.
	instrTime int64
	latency   *latencyFilter

	mu      sync.Mutex
	running bool
}

// NewGenerator returns a generator for one configured channel. The pin must
// already be configured as an output.
func NewGenerator(cfg ChannelConfig, pin Pin, stats StatsServer) *Generator {
	g := &Generator{
		cfg:     cfg,
		pin:     pin,
		clock:   SystemClock{},
		stats:   stats,
		section: OSThreadSection{},
		latency: newLatencyFilter(),
	}
	g.timer = newWallTimer(g.clock, g.fire)
	return g
}

// Start validates the config, drives the line LOW, calibrates the pin write
// cost and arms the first deadline. The first pulse lands between one and two
// seconds from now, with extra margin since no latency sample exists yet.
func (g *Generator) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		return fmt.Errorf("generator on pin %q already running", g.cfg.Pin)
	}
	if err := g.cfg.Validate(); err != nil {
		return err
	}
	if err := g.pin.Set(Low); err != nil {
		return fmt.Errorf("driving pin %q low: %w", g.cfg.Pin, err)
	}
	instr, err := Calibrate(g.clock, g.pin, g.section)
	if err != nil {
		return fmt.Errorf("calibrating pin %q: %w", g.cfg.Pin, err)
	}
	g.instrTime = instr.Nanoseconds()
	g.stats.SetCounter(g.key("instr_time_ns"), g.instrTime)
	g.stats.SetCounter(g.key("avg_latency_ns"), g.latency.avg)
	g.stats.SetCounter(g.key("pulse_width_ns"), g.cfg.PulseWidth.Nanoseconds())

	now := g.clock.Now()
	first := time.Unix(now.Unix()+1,
		nsPerSec-g.cfg.PulseWidth.Nanoseconds()-g.instrTime-3*SafetyInterval.Nanoseconds())
	g.timer.Start(first)
	g.running = true
	log.Infof("pps generator started on pin %q, pulse width %v", g.cfg.Pin, g.cfg.PulseWidth)
	return nil
}

// fire runs once per second. It validates the wake time, busy-waits to the
// assert and deassert offsets within the requested second, folds the measured
// write cost and wake latency into the running estimates, and rearms the
// timer for the next second.
func (g *Generator) fire(requested time.Time) TimerAction {
	width := g.cfg.PulseWidth.Nanoseconds()
	deassertNs := nsPerSec - g.instrTime
	assertNs := deassertNs - width

	// Anything else scheduled on this CPU introduces random lags while
	// polling the clock, so the whole timing-sensitive window runs with the
	// thread pinned. Approximate time inside the section:
	// pulse width + safety interval + average wake latency.
	exit := g.section.Enter()

	actual := g.clock.Now()
	reqSec, actSec := requested.Unix(), actual.Unix()

	if actSec > reqSec {
		// The clock is ahead of anything we ever armed for: it was stepped
		// while we slept, or is not yet valid early in boot. Skip the pulse
		// and defer to the next full second, keeping the estimates as is.
		exit()
		g.stats.UpdateCounterBy(g.key("clock_anomaly"), 1)
		g.timer.SetExpires(time.Unix(actSec+1,
			assertNs-g.latency.avg-SafetyInterval.Nanoseconds()))
		return TimerRestart
	}

	if reqSec != actSec || int64(actual.Nanosecond()) > assertNs {
		exit()
		log.Errorf("missed cycle on pin %q: requested [%d.%09d] actual [%d.%09d]",
			g.cfg.Pin, reqSec, requested.Nanosecond(), actSec, actual.Nanosecond())
		g.stats.UpdateCounterBy(g.key("missed"), 1)
	} else {
		// On time: poll the clock until the assert offset, toggle, poll
		// again until the deassert offset.
		var ts1 time.Time
		for ts1 = g.clock.Now(); ts1.Unix() == reqSec && int64(ts1.Nanosecond()) < assertNs; ts1 = g.clock.Now() {
		}
		errAssert := g.pin.Set(High)
		for ts1 = g.clock.Now(); ts1.Unix() == reqSec && int64(ts1.Nanosecond()) < deassertNs; ts1 = g.clock.Now() {
		}
		errDeassert := g.pin.Set(Low)
		ts2 := g.clock.Now()
		exit()

		if errAssert != nil || errDeassert != nil {
			log.Errorf("pin %q write failed: assert=%v deassert=%v",
				g.cfg.Pin, errAssert, errDeassert)
			g.stats.UpdateCounterBy(g.key("pin_error"), 1)
		} else {
			g.instrTime = (g.instrTime + ts2.Sub(ts1).Nanoseconds()) / 2
			g.stats.SetCounter(g.key("instr_time_ns"), g.instrTime)
		}
		g.stats.UpdateCounterBy(g.key("cycles"), 1)
	}

	avg := g.latency.update(actual.Sub(requested).Nanoseconds())
	g.stats.SetCounter(g.key("avg_latency_ns"), avg)

	// The next pulse always anchors to the second we asked for, not the
	// second we woke up in.
	g.timer.SetExpires(time.Unix(reqSec+1,
		assertNs-avg-SafetyInterval.Nanoseconds()))
	return TimerRestart
}

// Stop cancels the deadline timer, waits for any in-flight firing to
// complete and releases the pin. Safe to call more than once.
func (g *Generator) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.running {
		return
	}
	g.running = false
	g.timer.Cancel()
	log.Infof("pps generator on pin %q stopped, average wake latency was %dns",
		g.cfg.Pin, g.latency.avg)
	if c, ok := g.pin.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Errorf("releasing pin %q: %v", g.cfg.Pin, err)
		}
	}
}

func (g *Generator) key(name string) string {
	return fmt.Sprintf("ppsgen.%s.%s", g.cfg.Pin, name)
}
