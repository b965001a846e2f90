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

// Level is the binary state of the output line.
type Level bool

// Output line levels
const (
	Low  Level = false
	High Level = true
)

// Pin is a settable digital output line. The line must already be
// configured as an output before the generator starts.
type Pin interface {
	// Set drives the line to the given level.
	Set(level Level) error
}
