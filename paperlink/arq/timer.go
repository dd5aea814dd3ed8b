// Copyright (C) 2026 The go-paperlink Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package arq

import "time"

// deadlineTimer is a single-shot deadline, polled from the main loop
// rather than delivered through a scheduled callback. This keeps the
// sender's state transitions confined to one goroutine: there is no
// timer-fired handler racing the loop that reads ACKs.
type deadlineTimer struct {
	deadline time.Time
	running  bool
}

func (t *deadlineTimer) start(timeout time.Duration) {
	t.deadline = time.Now().Add(timeout)
	t.running = true
}

func (t *deadlineTimer) stop() {
	t.running = false
}

func (t *deadlineTimer) expired() bool {
	return t.running && time.Now().After(t.deadline)
}
