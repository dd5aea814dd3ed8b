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

package visualio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cybergarage/go-paperlink/paperlink/protocol/packet"
)

func TestEmitWritesArtifact(t *testing.T) {
	dir := t.TempDir()

	emitter, err := NewEmitter(dir)
	if err != nil {
		t.Fatalf("NewEmitter failed: %v", err)
	}

	encoded, err := packet.Encode(0, []byte("HELLO WORL"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	id, err := emitter.Emit(encoded, "packet_0")
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a non-empty artifact ID")
	}

	path := filepath.Join(dir, "packet_0.png")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected artifact at %s: %v", path, err)
	}
}

func TestEmitOverwritesOnRetransmission(t *testing.T) {
	dir := t.TempDir()
	emitter, err := NewEmitter(dir)
	if err != nil {
		t.Fatalf("NewEmitter failed: %v", err)
	}

	first, _ := packet.Encode(5, []byte("first"))
	second, _ := packet.Encode(5, []byte("retransmit"))

	id1, err := emitter.Emit(first, "packet_5")
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	id2, err := emitter.Emit(second, "packet_5")
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}

	if id1 == id2 {
		t.Error("expected distinct artifact IDs across retransmissions")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected a single overwritten artifact, got %d files", len(entries))
	}
}
