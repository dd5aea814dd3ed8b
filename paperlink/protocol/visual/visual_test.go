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

package visual

import (
	"bytes"
	"testing"

	plerrors "github.com/cybergarage/go-paperlink/paperlink/errors"
)

func TestToFromVisualRoundtrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "ascii", data: []byte("HELLO WORL")},
		{name: "high bytes", data: []byte{0x00, 0x80, 0xFF, 0x7F, 0x01}},
		{name: "all byte values", data: func() []byte {
			b := make([]byte, 256)
			for i := range b {
				b[i] = byte(i)
			}
			return b
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := ToVisual(tt.data)
			unwrapped, err := FromVisual(wrapped)
			if err != nil {
				t.Fatalf("FromVisual failed: %v", err)
			}
			if !bytes.Equal(unwrapped, tt.data) {
				t.Errorf("roundtrip mismatch: got %v, want %v", unwrapped, tt.data)
			}
		})
	}
}

func TestFromVisualMalformed(t *testing.T) {
	if _, err := FromVisual("not base64!!"); !plerrors.Is(err, plerrors.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}
