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

// Package camera provides FrameSource implementations: adapters that turn
// a stream of images (from disk, from a network multiplexer, or from a
// test fixture) into transport.Frame values for the ARQ core.
package camera

import (
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/multi"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// decodeQRPayloads returns the raw byte payload of every QR code found in
// img. An image with no recognizable QR code yields an empty, non-error
// result: absence of a code is routine on a channel this lossy.
func decodeQRPayloads(img image.Image) ([][]byte, error) {
	bitmap, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, err
	}

	reader := multi.NewGenericMultipleBarcodeReader(qrcode.NewQRCodeReader())
	results, err := reader.DecodeMultiple(bitmap, nil)
	if err != nil {
		// No barcode found is routine, not a frame-source failure.
		return nil, nil
	}

	payloads := make([][]byte, 0, len(results))
	for _, r := range results {
		payloads = append(payloads, []byte(r.GetText()))
	}
	return payloads, nil
}
