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

// Package visual implements the text-encoding wrapper required by the
// visual channel: QR libraries and camera decoders surface payloads as
// text, so raw packet bytes are base64-wrapped before they become a QR
// code and unwrapped after a camera reads one back. Omitting this step
// silently corrupts any byte above 0x80 on some decoders.
package visual

import (
	"encoding/base64"
	"fmt"

	plerrors "github.com/cybergarage/go-paperlink/paperlink/errors"
)

// ToVisual wraps packet bytes as a base64 ASCII string suitable for
// encoding into a QR code.
func ToVisual(packetBytes []byte) string {
	return base64.StdEncoding.EncodeToString(packetBytes)
}

// FromVisual reverses ToVisual. It returns ErrMalformed if s is not valid
// base64 text.
func FromVisual(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", plerrors.ErrMalformed, err)
	}
	return b, nil
}
