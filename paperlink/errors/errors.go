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

package errors

import "errors"

var (
	// ErrCorrupt indicates a CRC mismatch between a packet's claimed and
	// recomputed checksum.
	ErrCorrupt = errors.New("corrupt packet")
	// ErrMalformed indicates a visual-channel payload that is not valid
	// base64 text.
	ErrMalformed = errors.New("malformed visual payload")
	// ErrOversizePayload indicates a caller tried to encode more than
	// DataSize bytes into a single packet.
	ErrOversizePayload = errors.New("payload exceeds data size")
	// ErrOutOfWindow indicates an ACK referencing a sequence number outside
	// the sender's current [base, next_seq_num) window.
	ErrOutOfWindow = errors.New("ack out of window")
	// ErrFrameSource indicates the frame source failed to produce a frame.
	ErrFrameSource = errors.New("frame source failure")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target, and if so,
// sets target to that error value and returns true.
func As(err error, target any) bool {
	return errors.As(err, target)
}
