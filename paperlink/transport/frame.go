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

// Package transport defines the contract between the ARQ core and whatever
// produces decoded camera frames. The ARQ loops never know whether frames
// originate from a local camera, a networked multiplexer, or a test double.
package transport

import "context"

// Frame is one decoded camera frame: zero or more recognized QR payloads,
// already extracted from the image, as opaque byte strings.
type Frame struct {
	// Payloads holds the raw bytes decoded from each QR code found in the
	// frame, in no particular order.
	Payloads [][]byte
}

// FrameSource exposes a lazy, infinite sequence of decoded frames.
// NextFrame blocks until a frame is available, ctx is cancelled, or the
// source fails. Frames are never replayed: each call advances the stream.
type FrameSource interface {
	// NextFrame returns the next decoded frame, blocking as necessary.
	NextFrame(ctx context.Context) (Frame, error)
	// Close releases the underlying camera connection or file handle.
	Close() error
}
