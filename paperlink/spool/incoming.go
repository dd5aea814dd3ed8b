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
	"fmt"
	"os"
)

// IncomingAppender appends every delivered payload to a single well-known
// file, in delivery order. Source-file boundaries from the sending side
// are not preserved: the receiver only ever sees a flat byte stream.
type IncomingAppender struct {
	path string
	file *os.File
}

// NewIncomingAppender opens (creating if necessary) the file at path for
// appending.
func NewIncomingAppender(path string) (*IncomingAppender, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("spool: failed to open incoming file %s: %w", path, err)
	}
	return &IncomingAppender{path: path, file: f}, nil
}

// Write implements arq.OutputSink.
func (a *IncomingAppender) Write(payload []byte) error {
	if _, err := a.file.Write(payload); err != nil {
		return fmt.Errorf("spool: failed to append to %s: %w", a.path, err)
	}
	return nil
}

// Close releases the underlying file handle.
func (a *IncomingAppender) Close() error {
	return a.file.Close()
}
