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

package spool

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestOutgoingQueueChunksAndDrains(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "request_001.json"), []byte("0123456789"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	q := NewOutgoingQueue(dir, "request_*.json", 4)

	var got []byte
	for {
		chunk, ok := q.Dequeue()
		if !ok {
			break
		}
		if len(chunk) > 4 {
			t.Fatalf("chunk exceeds configured size: %d bytes", len(chunk))
		}
		got = append(got, chunk...)
	}

	if !bytes.Equal(got, []byte("0123456789")) {
		t.Fatalf("unexpected reassembled bytes: %q", got)
	}
}

func TestOutgoingQueueSkipsAlreadyProcessedFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "request_001.json"), []byte("AAAA"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	q := NewOutgoingQueue(dir, "request_*.json", 1024)

	first, ok := q.Dequeue()
	if !ok || !bytes.Equal(first, []byte("AAAA")) {
		t.Fatalf("unexpected first dequeue: %v, ok=%v", first, ok)
	}
	if _, ok := q.Dequeue(); ok {
		t.Fatalf("expected queue to be drained after the single chunk")
	}

	if err := os.WriteFile(filepath.Join(dir, "request_002.json"), []byte("BBBB"), 0o644); err != nil {
		t.Fatalf("failed to write second fixture: %v", err)
	}

	second, ok := q.Dequeue()
	if !ok || !bytes.Equal(second, []byte("BBBB")) {
		t.Fatalf("expected new file to be picked up on rescan, got %v, ok=%v", second, ok)
	}

	if _, ok := q.Dequeue(); ok {
		t.Fatalf("expected no further chunks once both files are drained")
	}
}

func TestIncomingAppenderAppendsInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "incoming.bin")

	a, err := NewIncomingAppender(path)
	if err != nil {
		t.Fatalf("NewIncomingAppender failed: %v", err)
	}

	if err := a.Write([]byte("hello ")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := a.Write([]byte("world")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back incoming file: %v", err)
	}
	if !bytes.Equal(got, []byte("hello world")) {
		t.Fatalf("unexpected incoming file content: %q", got)
	}
}
