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

// Package packet implements the wire framing shared by data and ACK packets:
//
//	offset  size  field
//	0       4     crc32(seq || payload), little-endian
//	4       1     sequence number, unsigned, little-endian
//	5       k     payload bytes (k <= DataSize)
//
// An ACK packet uses the same framing with an empty payload; the sequence
// byte carries the acknowledged sequence number instead.
package packet

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/cybergarage/go-paperlink/paperlink"
	plerrors "github.com/cybergarage/go-paperlink/paperlink/errors"
)

// DataSize is the maximum payload a single packet can carry. It is fixed by
// paperlink.PacketSize, not by the configurable packet size a session is run
// with: a configured packet size larger than this is rejected by
// config.Validate before a session ever calls Encode.
const DataSize = paperlink.DataSize

// HeaderSize is the number of bytes preceding the payload (checksum + seq).
const HeaderSize = 4 + 1

// Encode constructs a packet carrying seq and payload: it computes the
// CRC-32 of seq||payload and prepends it. Fails if payload is larger than
// DataSize.
func Encode(seq uint8, payload []byte) ([]byte, error) {
	if len(payload) > DataSize {
		return nil, fmt.Errorf("%w: %d > %d", plerrors.ErrOversizePayload, len(payload), DataSize)
	}

	body := make([]byte, 1+len(payload))
	body[0] = seq
	copy(body[1:], payload)

	checksum := crc32.ChecksumIEEE(body)

	out := make([]byte, HeaderSize+len(payload))
	binary.LittleEndian.PutUint32(out[0:4], checksum)
	copy(out[4:], body)
	return out, nil
}

// Decode parses a packet, verifying its CRC-32 against the claimed checksum.
// Returns ErrCorrupt on mismatch.
func Decode(data []byte) (seq uint8, payload []byte, err error) {
	if len(data) < HeaderSize {
		return 0, nil, fmt.Errorf("%w: packet too short (%d bytes)", plerrors.ErrCorrupt, len(data))
	}

	claimed := binary.LittleEndian.Uint32(data[0:4])
	body := data[4:]
	if crc32.ChecksumIEEE(body) != claimed {
		return 0, nil, plerrors.ErrCorrupt
	}

	return body[0], body[1:], nil
}

// EncodeAck builds the 5-byte standalone ACK packet for seq.
func EncodeAck(seq uint8) []byte {
	// Never fails: an empty payload is always within DataSize.
	out, _ := Encode(seq, nil)
	return out
}

// DecodeAck decodes a standalone ACK packet, returning the acknowledged
// sequence number.
func DecodeAck(data []byte) (uint8, error) {
	seq, payload, err := Decode(data)
	if err != nil {
		return 0, err
	}
	if len(payload) != 0 {
		return 0, fmt.Errorf("%w: ack carries %d payload bytes", plerrors.ErrCorrupt, len(payload))
	}
	return seq, nil
}
