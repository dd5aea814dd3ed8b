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
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"time"

	"github.com/cybergarage/go-logger/log"

	"github.com/cybergarage/go-paperlink/paperlink/transport"
)

// DirSource polls a directory for new image files on a fixed interval and
// decodes each into a transport.Frame. It stands in for a real camera: a
// printed or displayed QR code, once scanned by hand or by a real webcam,
// is expected to land in this directory as an image file.
//
// A background goroutine drains the directory into a bounded channel so
// NextFrame can present the synchronous, blocking contract the ARQ core
// expects.
type DirSource struct {
	dir      string
	interval time.Duration

	frames chan transport.Frame
	errs   chan error
	done   chan struct{}

	seen     map[string]bool
	produced uint64
	dropped  uint64
}

// NewDirSource creates a DirSource polling dir every interval.
func NewDirSource(dir string, interval time.Duration) (*DirSource, error) {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("failed to open frame directory %s: %w", dir, err)
	}

	s := &DirSource{
		dir:      dir,
		interval: interval,
		frames:   make(chan transport.Frame, 64),
		errs:     make(chan error, 1),
		done:     make(chan struct{}),
		seen:     make(map[string]bool),
	}
	go s.run()
	return s, nil
}

func (s *DirSource) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			for _, name := range s.newFiles() {
				frame, err := s.decodeFile(name)
				if err != nil {
					log.Warnf("camera: failed to decode frame %s: %v", name, err)
					continue
				}

				select {
				case s.frames <- frame:
					atomic.AddUint64(&s.produced, 1)
				default:
					atomic.AddUint64(&s.dropped, 1)
					log.Warnf("camera: dropped frame %s, consumer too slow", name)
				}
			}
		}
	}
}

func (s *DirSource) newFiles() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Warnf("camera: failed to list %s: %v", s.dir, err)
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || s.seen[e.Name()] {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
			continue
		}
		s.seen[e.Name()] = true
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func (s *DirSource) decodeFile(name string) (transport.Frame, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return transport.Frame{}, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return transport.Frame{}, err
	}

	payloads, err := decodeQRPayloads(img)
	if err != nil {
		return transport.Frame{}, err
	}
	return transport.Frame{Payloads: payloads}, nil
}

// NextFrame implements transport.FrameSource.
func (s *DirSource) NextFrame(ctx context.Context) (transport.Frame, error) {
	select {
	case <-ctx.Done():
		return transport.Frame{}, ctx.Err()
	case frame := <-s.frames:
		return frame, nil
	}
}

// Close stops the polling goroutine.
func (s *DirSource) Close() error {
	close(s.done)
	return nil
}
