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
	"sync"
	"time"
)

// TimerAction is what a timer callback tells the timer to do next.
type TimerAction int

// Timer callback results
const (
	// TimerStop stops the firing loop.
	TimerStop TimerAction = iota
	// TimerRestart rearms the timer for the expiry set by the callback.
	TimerRestart
)

// TimerCallback runs when the deadline expires. requested is the absolute
// time point the timer was armed for. To rearm, the callback rewrites the
// expiry with SetExpires and returns TimerRestart.
type TimerCallback func(requested time.Time) TimerAction

// deadlineTimer is a single-shot absolute deadline timer. A fixed-period
// ticker cannot serve here: every deadline depends on live latency data, so
// the timer is rearmed from scratch at the end of each firing.
type deadlineTimer interface {
	Start(expiry time.Time)
	SetExpires(expiry time.Time)
	Expires() time.Time
	Cancel()
}

// maxSleepChunk bounds a single sleep so external wall clock steps are
// noticed reasonably fast.
const maxSleepChunk = 100 * time.Millisecond

// wallTimer implements deadlineTimer against the wall clock. Callbacks never
// overlap: the next firing is only scheduled after the previous callback
// returns.
type wallTimer struct {
	clock Clock
	cb    TimerCallback

	mu      sync.Mutex
	expires time.Time
	started bool
	stopped bool

	stop chan struct{}
	done chan struct{}
}

func newWallTimer(clock Clock, cb TimerCallback) *wallTimer {
	return &wallTimer{
		clock: clock,
		cb:    cb,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start arms the timer and runs the firing loop until the callback returns
// TimerStop or Cancel is called.
func (t *wallTimer) Start(expiry time.Time) {
	t.mu.Lock()
	t.expires = expiry
	t.started = true
	t.mu.Unlock()
	go t.loop()
}

// SetExpires rewrites the deadline. Called from the callback to rearm.
func (t *wallTimer) SetExpires(expiry time.Time) {
	t.mu.Lock()
	t.expires = expiry
	t.mu.Unlock()
}

// Expires returns the deadline the timer is currently armed for.
func (t *wallTimer) Expires() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expires
}

func (t *wallTimer) loop() {
	defer close(t.done)
	for {
		d := t.Expires().Sub(t.clock.Now())
		if d > 0 {
			if d > maxSleepChunk {
				d = maxSleepChunk
			}
			select {
			case <-t.stop:
				return
			case <-time.After(d):
			}
			continue
		}
		select {
		case <-t.stop:
			return
		default:
		}
		if t.cb(t.Expires()) == TimerStop {
			return
		}
	}
}

// Cancel stops the timer and blocks until any in-flight firing completes.
// Safe to call more than once.
func (t *wallTimer) Cancel() {
	t.mu.Lock()
	if !t.stopped {
		t.stopped = true
		close(t.stop)
	}
	started := t.started
	t.mu.Unlock()
	if started {
		<-t.done
	}
}
