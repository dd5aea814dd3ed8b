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

// Package config centralizes the tuning parameters of a paperlink session
// behind viper, bound to cobra persistent flags and an env prefix by the
// cmd package. The protocol constants (checksum and sequence-number field
// widths) are fixed by the wire format and are not configurable; they are
// exposed here only so callers can size buffers without importing the
// protocol packages directly.
package config

import (
	"fmt"
	"time"

	"github.com/cybergarage/go-safecast/safecast"
	"github.com/spf13/viper"

	"github.com/cybergarage/go-paperlink/paperlink"
)

// Parameter names, bound to PAPERLINK_<NAME> environment variables by the
// cmd package.
const (
	PacketSizeParam   = "packet_size"
	TimeoutParam      = "timeout"
	PollIntervalParam = "poll_interval"
	VerboseParam      = "verbose"
	DebugParam        = "debug"
)

// EnvPrefix is the environment variable prefix bound in cmd/root.go.
const EnvPrefix = "paperlink"

// Config is the resolved set of tuning parameters for a session.
type Config struct {
	// PacketSize is the total wire size of a data packet, shared by sender
	// and receiver.
	PacketSize int
	// ChecksumSize is fixed by the wire format.
	ChecksumSize int
	// SeqNumFieldSize is fixed by the wire format.
	SeqNumFieldSize int
	// Timeout is the sender's retransmission deadline.
	Timeout time.Duration
	// PollInterval is the receiver's frame-polling cadence.
	PollInterval time.Duration
}

// SetDefaults registers every parameter's default value with v. Call this
// once, before binding flags, so unset flags and env vars fall back to
// sensible values.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(PacketSizeParam, paperlink.PacketSize)
	v.SetDefault(TimeoutParam, paperlink.DefaultTimeout)
	v.SetDefault(PollIntervalParam, paperlink.DefaultPollInterval)
	v.SetDefault(VerboseParam, false)
	v.SetDefault(DebugParam, false)
}

// FromViper reads the resolved parameters out of v.
func FromViper(v *viper.Viper) Config {
	return Config{
		PacketSize:      v.GetInt(PacketSizeParam),
		ChecksumSize:    paperlink.ChecksumSize,
		SeqNumFieldSize: paperlink.SeqNumFieldSize,
		Timeout:         v.GetDuration(TimeoutParam),
		PollInterval:    v.GetDuration(PollIntervalParam),
	}
}

// DataSize is the maximum payload this configuration can carry per
// packet.
func (c Config) DataSize() int {
	return c.PacketSize - c.ChecksumSize - c.SeqNumFieldSize
}

// Validate checks that a user-supplied PacketSize (from a flag or an env
// var, so effectively untrusted input) is both positive and narrow enough
// to fit a QR code's practical capacity, that it leaves room for the fixed
// checksum and sequence-number fields, and that it does not exceed the
// codec's fixed payload cap (paperlink.PacketSize): packet.Encode rejects
// anything larger, so a session started with an oversize PacketSize would
// otherwise fail on its first packet instead of at startup.
func (c Config) Validate() error {
	var packetSize uint16
	if err := safecast.ToUint16(c.PacketSize, &packetSize); err != nil {
		return fmt.Errorf("config: packet size out of range: %w", err)
	}
	if c.DataSize() <= 0 {
		return fmt.Errorf("config: packet size %d leaves no room for payload after a %d-byte checksum and %d-byte sequence number",
			c.PacketSize, c.ChecksumSize, c.SeqNumFieldSize)
	}
	if c.PacketSize > paperlink.PacketSize {
		return fmt.Errorf("config: packet size %d exceeds the codec's fixed cap of %d", c.PacketSize, paperlink.PacketSize)
	}
	return nil
}
