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

package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/cybergarage/go-paperlink/paperlink"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg := FromViper(v)
	if cfg.PacketSize != paperlink.PacketSize {
		t.Errorf("PacketSize: got %d, want %d", cfg.PacketSize, paperlink.PacketSize)
	}
	if cfg.Timeout != paperlink.DefaultTimeout {
		t.Errorf("Timeout: got %v, want %v", cfg.Timeout, paperlink.DefaultTimeout)
	}
	if cfg.PollInterval != paperlink.DefaultPollInterval {
		t.Errorf("PollInterval: got %v, want %v", cfg.PollInterval, paperlink.DefaultPollInterval)
	}
	if got, want := cfg.DataSize(), paperlink.DataSize; got != want {
		t.Errorf("DataSize: got %d, want %d", got, want)
	}
}

func TestValidateRejectsOversizeAndUndersizePacketSize(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	v.Set(PacketSizeParam, 1<<20)
	cfg := FromViper(v)
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected Validate to reject a packet size that overflows uint16")
	}

	v.Set(PacketSizeParam, 2)
	cfg = FromViper(v)
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected Validate to reject a packet size too small to hold the checksum and sequence number fields")
	}
}

func TestValidateRejectsPacketSizeAboveCodecCap(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(PacketSizeParam, paperlink.PacketSize+1)

	cfg := FromViper(v)
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected Validate to reject a packet size above the codec's fixed cap")
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	cfg := FromViper(v)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default configuration to validate, got: %v", err)
	}
}

func TestFromViperOverride(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(TimeoutParam, 5*time.Second)
	v.Set(PacketSizeParam, 256)

	cfg := FromViper(v)
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout override not applied: got %v", cfg.Timeout)
	}
	if cfg.PacketSize != 256 {
		t.Errorf("PacketSize override not applied: got %d", cfg.PacketSize)
	}
	if cfg.DataSize() != 256-cfg.ChecksumSize-cfg.SeqNumFieldSize {
		t.Errorf("DataSize did not reflect overridden PacketSize: got %d", cfg.DataSize())
	}
}
