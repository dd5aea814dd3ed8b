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

// Package arq implements the Go-Back-N ARQ state machines: Sender and
// Receiver. Both are single-threaded cooperative loops; neither state is
// ever observed by two goroutines at once.
package arq

const (
	// NumSeqs is the size of the modular sequence-number space.
	NumSeqs = 256
	// WindowSize is the maximum number of outstanding unacknowledged
	// packets, leaving two sequence numbers free to disambiguate fresh
	// from wrapped sequence numbers under reordering.
	WindowSize = NumSeqs - 2
)

// seqDistance returns (b - a) mod NumSeqs, the number of steps forward
// from a to reach b. Always iterate the window this way, never by raw
// integer comparison: next_seq_num can be numerically less than base
// after a wrap.
func seqDistance(a, b uint8) int {
	return int(b-a) & 0xFF
}

// inWindow reports whether seq lies in [base, next) modulo NumSeqs.
func inWindow(seq, base, next uint8) bool {
	return seqDistance(base, seq) < seqDistance(base, next)
}
