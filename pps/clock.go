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

import "time"

// Clock provides wall-clock readings with nanosecond resolution.
// The wall clock is subject to external adjustment and is not monotonic.
// Implementations must be cheap enough to poll in a busy loop.
type Clock interface {
	Now() time.Time
}
