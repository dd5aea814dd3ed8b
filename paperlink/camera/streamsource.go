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
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/jpeg"
	"io"

	"github.com/cybergarage/go-paperlink/paperlink/transport"
)

// streamResult carries one decoded frame or the error that prevented it.
type streamResult struct {
	frame transport.Frame
	err   error
}

// StreamSource decodes frames from a length-prefixed JPEG stream: a
// 4-byte big-endian length followed by that many JPEG bytes, repeated.
// This is the wire shape of the out-of-scope webcam multiplexer; decoding
// it is the only contract this package takes on, with no reconnection or
// multiplexing policy of its own.
//
// A single background goroutine owns the underlying bufio.Reader for the
// life of the StreamSource, so a NextFrame call that returns early on
// context cancellation never leaves a second goroutine racing it for the
// same bytes; the in-flight read's result is simply picked up by the next
// NextFrame call instead.
type StreamSource struct {
	r       *bufio.Reader
	closer  io.Closer
	results chan streamResult
	closed  chan struct{}
}

// NewStreamSource wraps rc, which must deliver length-prefixed JPEG
// frames as described above.
func NewStreamSource(rc io.ReadCloser) *StreamSource {
	s := &StreamSource{
		r:       bufio.NewReader(rc),
		closer:  rc,
		results: make(chan streamResult),
		closed:  make(chan struct{}),
	}
	go s.readLoop()
	return s
}

// readLoop decodes frames one at a time for the life of the StreamSource,
// handing each off to whichever NextFrame call is waiting. It exits once a
// read fails (the stream is spent, or Close tore it down) or once Close
// signals shutdown while a result is being delivered.
func (s *StreamSource) readLoop() {
	for {
		res := s.readOne()
		select {
		case s.results <- res:
			if res.err != nil {
				return
			}
		case <-s.closed:
			return
		}
	}
}

func (s *StreamSource) readOne() streamResult {
	var length uint32
	if err := binary.Read(s.r, binary.BigEndian, &length); err != nil {
		return streamResult{err: fmt.Errorf("failed to read frame length: %w", err)}
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return streamResult{err: fmt.Errorf("failed to read frame body: %w", err)}
	}

	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return streamResult{err: fmt.Errorf("failed to decode frame image: %w", err)}
	}

	payloads, err := decodeQRPayloads(img)
	if err != nil {
		return streamResult{err: err}
	}
	return streamResult{frame: transport.Frame{Payloads: payloads}}
}

// NextFrame implements transport.FrameSource.
func (s *StreamSource) NextFrame(ctx context.Context) (transport.Frame, error) {
	select {
	case <-ctx.Done():
		return transport.Frame{}, ctx.Err()
	case res := <-s.results:
		return res.frame, res.err
	}
}

// Close releases the underlying stream and stops the background reader.
func (s *StreamSource) Close() error {
	close(s.closed)
	return s.closer.Close()
}
