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

//go:build !linux

// Package rt configures realtime scheduling for the timing-critical loop.
package rt

import "errors"

var errUnsupported = errors.New("realtime scheduling is only supported on linux")

// SetScheduler is not available on this platform.
func SetScheduler(int) error {
	return errUnsupported
}

// LockMemory is not available on this platform.
func LockMemory() error {
	return errUnsupported
}
