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

import (
	"context"
	"errors"

	"github.com/cybergarage/go-paperlink/paperlink/camera"
	"github.com/cybergarage/go-paperlink/paperlink/protocol/packet"
	"github.com/cybergarage/go-paperlink/paperlink/protocol/visual"
	"github.com/cybergarage/go-paperlink/paperlink/transport"
)

// failingFrameSource always fails with a non-context error, for testing
// the sender's consecutive-failure bound.
type failingFrameSource struct{}

func (failingFrameSource) NextFrame(ctx context.Context) (transport.Frame, error) {
	return transport.Frame{}, errors.New("camera disconnected")
}

func (failingFrameSource) Close() error { return nil }

// sliceQueue is an InputQueue over a fixed, pre-chunked slice.
type sliceQueue struct {
	chunks [][]byte
	i      int
}

func (q *sliceQueue) Dequeue() ([]byte, bool) {
	if q.i >= len(q.chunks) {
		return nil, false
	}
	c := q.chunks[q.i]
	q.i++
	return c, true
}

func chunkBytes(data []byte, size int) [][]byte {
	var chunks [][]byte
	for len(data) > 0 {
		n := size
		if n > len(data) {
			n = len(data)
		}
		chunks = append(chunks, data[:n])
		data = data[n:]
	}
	return chunks
}

// countingEmitter is an Emitter that only counts how many times it fired,
// for window-capacity tests that never wire up a peer.
type countingEmitter struct {
	count int
}

func (e *countingEmitter) Emit(packetBytes []byte, tag string) (string, error) {
	e.count++
	return tag, nil
}

// recordingEmitter decodes every emitted packet as an ACK and records the
// acknowledged sequence numbers in emission order.
type recordingEmitter struct {
	acks []uint8
}

func (e *recordingEmitter) Emit(packetBytes []byte, tag string) (string, error) {
	seq, err := packet.DecodeAck(packetBytes)
	if err != nil {
		return "", err
	}
	e.acks = append(e.acks, seq)
	return tag, nil
}

// filterFunc inspects a would-be emission and decides whether the channel
// actually carries it, optionally mutating the bytes in flight to simulate
// corruption.
type filterFunc func(tag string, packetBytes []byte) ([]byte, bool)

// channelEmitter base64-wraps packetBytes and pushes it onto a peer
// MemSource, the loopback stand-in for the physical visual channel. A
// filter may drop or corrupt specific, named emissions to simulate channel
// loss without timing-dependent trickery.
type channelEmitter struct {
	target *camera.MemSource
	filter filterFunc
}

func (e *channelEmitter) Emit(packetBytes []byte, tag string) (string, error) {
	out := packetBytes
	deliver := true
	if e.filter != nil {
		out, deliver = e.filter(tag, packetBytes)
	}
	if deliver {
		e.target.PushPayload([]byte(visual.ToVisual(out)))
	}
	return tag, nil
}

// dropFirst drops only the first emission tagged tag; every later one
// (e.g. a retransmission) passes through untouched.
func dropFirst(tag string) filterFunc {
	seen := false
	return func(t string, b []byte) ([]byte, bool) {
		if t == tag && !seen {
			seen = true
			return b, false
		}
		return b, true
	}
}

// corruptFirst inverts every bit of the first byte (part of the CRC field)
// of the first emission tagged tag; every later one passes through
// untouched.
func corruptFirst(tag string) filterFunc {
	seen := false
	return func(t string, b []byte) ([]byte, bool) {
		if t == tag && !seen {
			seen = true
			mutated := append([]byte(nil), b...)
			mutated[0] ^= 0xFF
			return mutated, true
		}
		return b, true
	}
}

// bufSink is an OutputSink that appends every delivered payload in order.
type bufSink struct {
	data []byte
}

func (s *bufSink) Write(payload []byte) error {
	s.data = append(s.data, payload...)
	return nil
}
