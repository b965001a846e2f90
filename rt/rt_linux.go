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

//go:build linux

// Package rt configures realtime scheduling for the timing-critical loop.
// SCHED_FIFO on an isolated core is the userspace approximation of running
// with interrupts masked: without it the busy-wait can be preempted at any
// point and the sub-microsecond alignment is no longer guaranteed.
package rt

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// SetScheduler puts the process under SCHED_FIFO at the given priority.
func SetScheduler(priority int) error {
	if priority < 1 || priority > 99 {
		return fmt.Errorf("SCHED_FIFO priority %d not in [1, 99]", priority)
	}
	attr := &unix.SchedAttr{
		Size:     unix.SizeofSchedAttr,
		Policy:   unix.SCHED_FIFO,
		Priority: uint32(priority),
	}
	return unix.SchedSetAttr(0, attr, 0)
}

// LockMemory pins current and future pages to RAM so a page fault cannot
// interrupt a busy-wait.
func LockMemory() error {
	return unix.Mlockall(unix.MCL_CURRENT | unix.MCL_FUTURE)
}
