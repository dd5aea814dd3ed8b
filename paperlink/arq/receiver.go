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
	"fmt"

	"github.com/cybergarage/go-logger/log"

	"github.com/cybergarage/go-paperlink/paperlink/protocol/packet"
	"github.com/cybergarage/go-paperlink/paperlink/protocol/visual"
	"github.com/cybergarage/go-paperlink/paperlink/transport"
)

// OutputSink receives delivered payload bytes, strictly in ascending
// sequence order (with wrap). Source-file boundaries are not preserved at
// this layer.
type OutputSink interface {
	Write(payload []byte) error
}

// Receiver accepts in-order bytes from the visual channel, acknowledges
// the highest contiguous sequence number delivered, and suppresses
// duplicates and out-of-order packets. It runs indefinitely: there is no
// terminal state, mirroring the sender's lack of a matching shutdown
// handshake.
type Receiver struct {
	expectedSeqNum uint8
	lastAck        *uint8

	frames  transport.FrameSource
	emitter Emitter
	sink    OutputSink
}

// NewReceiver creates a Receiver.
func NewReceiver(frames transport.FrameSource, emitter Emitter, sink OutputSink) *Receiver {
	return &Receiver{frames: frames, emitter: emitter, sink: sink}
}

// Run pulls frames and processes packets until ctx is cancelled or the
// frame source fails.
func (r *Receiver) Run(ctx context.Context) error {
	for {
		frame, err := r.frames.NextFrame(ctx)
		if err != nil {
			return err
		}
		if err := r.handleFrame(frame); err != nil {
			return err
		}
	}
}

func (r *Receiver) handleFrame(frame transport.Frame) error {
	for _, raw := range frame.Payloads {
		if err := r.handlePayload(raw); err != nil {
			return err
		}
	}
	return nil
}

func (r *Receiver) handlePayload(raw []byte) error {
	packetBytes, err := visual.FromVisual(string(raw))
	if err != nil {
		log.Warnf("receiver: malformed visual payload: %v", err)
		return r.reAckIfAny()
	}

	seq, payload, err := packet.Decode(packetBytes)
	if err != nil {
		log.Warnf("receiver: corrupt packet: %v", err)
		return r.reAckIfAny()
	}

	if seq != r.expectedSeqNum {
		log.Debugf("receiver: out-of-order packet seq=%d, expected=%d", seq, r.expectedSeqNum)
		return r.reAckIfAny()
	}

	if err := r.ack(r.expectedSeqNum); err != nil {
		return err
	}
	if err := r.sink.Write(payload); err != nil {
		return fmt.Errorf("receiver: failed to deliver payload seq=%d: %w", seq, err)
	}

	acked := r.expectedSeqNum
	r.lastAck = &acked
	r.expectedSeqNum++
	log.Infof("receiver: delivered seq=%d, expected now %d", seq, r.expectedSeqNum)
	return nil
}

// reAckIfAny re-emits the last successful ACK so the sender can eventually
// advance even if that ACK was originally lost: every later retransmission
// arrives as a duplicate, so the receiver keeps re-advertising last_ack.
func (r *Receiver) reAckIfAny() error {
	if r.lastAck == nil {
		return nil
	}
	return r.ack(*r.lastAck)
}

func (r *Receiver) ack(seq uint8) error {
	encoded := packet.EncodeAck(seq)
	if _, err := r.emitter.Emit(encoded, fmt.Sprintf("ack_%d", seq)); err != nil {
		return fmt.Errorf("receiver: failed to emit ack %d: %w", seq, err)
	}
	log.Debugf("receiver: emitted ack=%d", seq)
	return nil
}
