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
	"fmt"
	"time"

	"github.com/cybergarage/go-logger/log"

	plerrors "github.com/cybergarage/go-paperlink/paperlink/errors"
	"github.com/cybergarage/go-paperlink/paperlink/protocol/packet"
	"github.com/cybergarage/go-paperlink/paperlink/protocol/visual"
	"github.com/cybergarage/go-paperlink/paperlink/transport"
)

// InputQueue supplies outgoing chunks of at most packet.DataSize bytes.
// Dequeue returns ok=false once the queue is exhausted for this session.
type InputQueue interface {
	Dequeue() (chunk []byte, ok bool)
}

// Emitter renders packet bytes onto the visual channel.
type Emitter interface {
	Emit(packetBytes []byte, tag string) (artifactID string, err error)
}

// SessionResult is the sender's terminal outcome.
type SessionResult int

const (
	// SessionSuccess means the input queue drained and every packet was
	// acknowledged.
	SessionSuccess SessionResult = iota
	// SessionInterrupted means the caller's context was cancelled, or the
	// frame source failed irrecoverably, before the session finished.
	SessionInterrupted
)

func (r SessionResult) String() string {
	switch r {
	case SessionSuccess:
		return "success"
	case SessionInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Sender drives a Go-Back-N window over an InputQueue, emitting data
// packets via an Emitter and consuming ACKs from a transport.FrameSource.
// Sender is not safe for concurrent use: it is a single cooperative loop.
type Sender struct {
	base       uint8
	nextSeqNum uint8
	buffer     [NumSeqs][]byte

	input   InputQueue
	emitter Emitter
	frames  transport.FrameSource

	timeout      time.Duration
	timer        deadlineTimer
	corruptRun   int
	maxCorrupt   int
	queueDrained bool
}

// NewSender creates a Sender. timeout is the retransmission deadline;
// maxConsecutiveCorrupt bounds how many frame-source failures in a row
// are tolerated before the session is declared fatally interrupted (0
// disables the bound).
func NewSender(input InputQueue, emitter Emitter, frames transport.FrameSource, timeout time.Duration, maxConsecutiveCorrupt int) *Sender {
	return &Sender{
		input:      input,
		emitter:    emitter,
		frames:     frames,
		timeout:    timeout,
		maxCorrupt: maxConsecutiveCorrupt,
	}
}

// Run drives the sender to completion or until ctx is cancelled.
func (s *Sender) Run(ctx context.Context) (SessionResult, error) {
	for {
		if err := s.fillWindow(); err != nil {
			return SessionInterrupted, err
		}

		if s.terminal() {
			log.Infof("sender: session complete, base=%d", s.base)
			return SessionSuccess, nil
		}

		frame, err := s.awaitFrameOrTimeout(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Warnf("sender: interrupted: %v", ctx.Err())
				return SessionInterrupted, ctx.Err()
			}
			if errors.Is(err, context.DeadlineExceeded) {
				s.retransmitWindow()
				continue
			}

			s.corruptRun++
			log.Warnf("sender: frame source error (%d in a row): %v", s.corruptRun, err)
			if s.maxCorrupt > 0 && s.corruptRun >= s.maxCorrupt {
				return SessionInterrupted, fmt.Errorf("%w: failed %d times in a row: %v", plerrors.ErrFrameSource, s.corruptRun, err)
			}
			continue
		}
		s.corruptRun = 0

		s.handleFrame(frame)
	}
}

func (s *Sender) terminal() bool {
	return s.queueDrained && s.base == s.nextSeqNum
}

// fillWindow dequeues fresh input and sends while the window has room.
// A fresh dequeue is attempted before every send cycle so newly queued
// input is picked up promptly.
func (s *Sender) fillWindow() error {
	for seqDistance(s.base, s.nextSeqNum) < WindowSize {
		chunk, ok := s.input.Dequeue()
		if !ok {
			s.queueDrained = true
			return nil
		}
		s.queueDrained = false

		encoded, err := packet.Encode(s.nextSeqNum, chunk)
		if err != nil {
			return fmt.Errorf("sender: failed to encode packet %d: %w", s.nextSeqNum, err)
		}

		wasEmpty := s.base == s.nextSeqNum

		s.buffer[s.nextSeqNum] = encoded
		if _, err := s.emitter.Emit(encoded, fmt.Sprintf("packet_%d", s.nextSeqNum)); err != nil {
			return fmt.Errorf("sender: failed to emit packet %d: %w", s.nextSeqNum, err)
		}
		log.Debugf("sender: sent packet seq=%d (%d bytes)", s.nextSeqNum, len(chunk))

		if wasEmpty {
			s.timer.start(s.timeout)
		}
		s.nextSeqNum++
	}
	return nil
}

// awaitFrameOrTimeout blocks for the next frame, bounded by the sender's
// retransmission deadline when a timer is running.
func (s *Sender) awaitFrameOrTimeout(ctx context.Context) (transport.Frame, error) {
	waitCtx := ctx
	if s.timer.running {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithDeadline(ctx, s.timer.deadline)
		defer cancel()
	}
	return s.frames.NextFrame(waitCtx)
}

// retransmitWindow restarts the timer and resends every outstanding
// packet in [base, next_seq_num) in ascending order: the Go-Back-N
// semantic that gives the protocol its name.
func (s *Sender) retransmitWindow() {
	log.Warnf("sender: timeout, retransmitting window [%d, %d)", s.base, s.nextSeqNum)
	s.timer.start(s.timeout)

	for seq := s.base; seq != s.nextSeqNum; seq++ {
		if _, err := s.emitter.Emit(s.buffer[seq], fmt.Sprintf("packet_%d", seq)); err != nil {
			log.Errorf("sender: failed to retransmit packet %d: %v", seq, err)
		}
	}
}

// handleFrame inspects every QR payload in frame for a valid ACK and
// advances the window on each in-window ACK, in payload order. Corrupt or
// out-of-window ACKs leave state unchanged.
func (s *Sender) handleFrame(frame transport.Frame) {
	for _, raw := range frame.Payloads {
		packetBytes, err := visual.FromVisual(string(raw))
		if err != nil {
			log.Warnf("sender: malformed visual payload, ignoring: %v", err)
			continue
		}

		ack, err := packet.DecodeAck(packetBytes)
		if err != nil {
			log.Warnf("sender: corrupt ack, ignoring: %v", err)
			continue
		}

		if !inWindow(ack, s.base, s.nextSeqNum) {
			log.Debugf("sender: %v: ack=%d, base=%d, next=%d, discarding", plerrors.ErrOutOfWindow, ack, s.base, s.nextSeqNum)
			continue
		}

		newBase := ack + 1
		log.Infof("sender: ack=%d, advancing base %d -> %d", ack, s.base, newBase)
		s.base = newBase

		if s.base == s.nextSeqNum {
			s.timer.stop()
		} else {
			s.timer.start(s.timeout)
		}
	}
}
