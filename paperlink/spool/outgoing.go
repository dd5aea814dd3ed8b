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

// Package spool provides the filesystem glue on either side of the ARQ
// core: an outgoing queue that feeds the Sender, and an incoming appender
// that drains the Receiver. Neither grows ARQ-shaped behavior; they only
// adapt a directory of request files (and a single response file) to the
// small interfaces the core depends on.
package spool

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/cybergarage/go-logger/log"
)

// OutgoingQueue globs files matching a pattern from a directory, splits
// each into chunkSize chunks, and serves them in filename order. Each
// matched file is ingested once: files already seen are skipped on
// subsequent directory rescans so late-arriving files are picked up
// without reprocessing earlier ones.
type OutgoingQueue struct {
	dir       string
	pattern   string
	chunkSize int

	processed map[string]bool
	pending   [][]byte
}

// NewOutgoingQueue creates an OutgoingQueue over dir, matching files with
// pattern (a filepath.Match-style glob, e.g. "request_*.json").
func NewOutgoingQueue(dir, pattern string, chunkSize int) *OutgoingQueue {
	return &OutgoingQueue{
		dir:       dir,
		pattern:   pattern,
		chunkSize: chunkSize,
		processed: make(map[string]bool),
	}
}

// Dequeue implements arq.InputQueue. It rescans the spool directory each
// time the in-memory chunk buffer is empty, so a file written after an
// earlier scan is picked up by a later Dequeue call. It returns ok=false
// whenever that rescan finds no new file.
func (q *OutgoingQueue) Dequeue() ([]byte, bool) {
	if len(q.pending) == 0 {
		if err := q.ingest(); err != nil {
			log.Warnf("spool: failed to scan outgoing directory %s: %v", q.dir, err)
		}
	}
	if len(q.pending) == 0 {
		return nil, false
	}
	chunk := q.pending[0]
	q.pending = q.pending[1:]
	return chunk, true
}

func (q *OutgoingQueue) ingest() error {
	matches, err := filepath.Glob(filepath.Join(q.dir, q.pattern))
	if err != nil {
		return fmt.Errorf("spool: bad pattern %q: %w", q.pattern, err)
	}
	sort.Strings(matches)

	for _, path := range matches {
		name := filepath.Base(path)
		if q.processed[name] {
			continue
		}
		q.processed[name] = true

		data, err := os.ReadFile(path)
		if err != nil {
			log.Warnf("spool: failed to read %s, skipping: %v", path, err)
			continue
		}
		q.pending = append(q.pending, chunk(data, q.chunkSize)...)
		log.Infof("spool: ingested %s (%d bytes, %d chunks)", name, len(data), (len(data)+q.chunkSize-1)/q.chunkSize)
	}
	return nil
}

func chunk(data []byte, size int) [][]byte {
	if size <= 0 {
		return [][]byte{data}
	}
	var chunks [][]byte
	for len(data) > 0 {
		n := size
		if n > len(data) {
			n = len(data)
		}
		chunks = append(chunks, data[:n:n])
		data = data[n:]
	}
	if len(chunks) == 0 {
		// An empty file is still a request that was made; deliver it as a
		// single empty chunk rather than silently dropping it.
		chunks = append(chunks, []byte{})
	}
	return chunks
}
