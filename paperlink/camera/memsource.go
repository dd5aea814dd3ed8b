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

package camera

import (
	"context"

	"github.com/cybergarage/go-paperlink/paperlink/transport"
)

// MemSource is an in-memory, channel-backed FrameSource for tests and for
// loopback demos: no camera, no filesystem, just queued frames.
type MemSource struct {
	frames chan transport.Frame
	closed chan struct{}
}

// NewMemSource creates a MemSource with the given channel buffer depth.
func NewMemSource(buffer int) *MemSource {
	return &MemSource{
		frames: make(chan transport.Frame, buffer),
		closed: make(chan struct{}),
	}
}

// Push enqueues a frame for a subsequent NextFrame call. It never blocks
// the caller beyond the channel's buffer depth.
func (m *MemSource) Push(frame transport.Frame) {
	m.frames <- frame
}

// PushPayload is a convenience wrapper that enqueues a single-payload
// frame, the common case in tests that feed one QR code at a time.
func (m *MemSource) PushPayload(payload []byte) {
	m.Push(transport.Frame{Payloads: [][]byte{payload}})
}

// NextFrame implements transport.FrameSource.
func (m *MemSource) NextFrame(ctx context.Context) (transport.Frame, error) {
	select {
	case <-ctx.Done():
		return transport.Frame{}, ctx.Err()
	case <-m.closed:
		return transport.Frame{}, context.Canceled
	case frame := <-m.frames:
		return frame, nil
	}
}

// Close marks the source closed; any blocked NextFrame returns.
func (m *MemSource) Close() error {
	close(m.closed)
	return nil
}
