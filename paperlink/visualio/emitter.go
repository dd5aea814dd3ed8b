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

// Package visualio renders packet bytes as QR-code image artifacts. It is
// pure output: the emitter never learns whether the physical medium
// (printer or screen) actually surfaced the artifact to a camera.
package visualio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cybergarage/go-logger/log"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/cybergarage/go-paperlink/paperlink/protocol/visual"
)

const (
	// BoxSize is the pixel width of a single QR module.
	BoxSize = 10
	// Border is the quiet-zone width, in modules.
	Border = 4
)

// Emitter accepts packet bytes and writes a QR-code PNG artifact to a
// well-known output directory.
type Emitter struct {
	dir string
}

// NewEmitter creates an Emitter that writes artifacts under dir.
func NewEmitter(dir string) (*Emitter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create emitter output directory: %w", err)
	}
	return &Emitter{dir: dir}, nil
}

// Emit base64-wraps packetBytes, renders it as an error-correction-level-L
// QR code, and writes it to "<tag>.png" in the emitter's directory.
// Retransmissions reuse the same tag and overwrite the prior artifact,
// which is acceptable: the visual channel has no history to confuse.
// The returned artifactID is unique per call for log correlation even
// when the tag repeats.
func (e *Emitter) Emit(packetBytes []byte, tag string) (artifactID string, err error) {
	encoded := visual.ToVisual(packetBytes)

	qr, err := qrcode.New(encoded, qrcode.Low)
	if err != nil {
		return "", fmt.Errorf("failed to build QR code for %s: %w", tag, err)
	}
	qr.DisableBorder = Border == 0

	artifactID = fmt.Sprintf("%s-%s", tag, uuid.New().String())
	path := filepath.Join(e.dir, tag+".png")

	// A negative size tells go-qrcode to treat it as pixels-per-module
	// rather than a total image width, which is what actually honors
	// BoxSize; a positive size here would get rounded down to ~1px/module.
	if err := qr.WriteFile(-BoxSize, path); err != nil {
		return "", fmt.Errorf("failed to write QR artifact %s: %w", path, err)
	}

	log.Debugf("emitted QR artifact %s (%d packet bytes, tag=%s)", artifactID, len(packetBytes), tag)

	return artifactID, nil
}
