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

import "runtime"

// Section is an uninterruptible critical section around the timing-sensitive
// part of a cycle. Userspace cannot mask interrupts, so the closest
// approximation is pinning the goroutine to its OS thread and running the
// process under a realtime scheduling policy on an isolated core (see the rt
// package). Without both, the nanosecond-level guarantee degrades to
// whatever the OS scheduler provides.
type Section interface {
	// Enter begins the section and returns the function that ends it.
	Enter() (exit func())
}

// OSThreadSection pins the calling goroutine to its OS thread for the
// duration of the section, so the runtime cannot migrate it mid-busy-wait.
type OSThreadSection struct{}

// Enter implements Section.
func (OSThreadSection) Enter() func() {
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}
