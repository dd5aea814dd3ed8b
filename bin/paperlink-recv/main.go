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

/*
paperlink-recv is the receiving half of the air-gapped visual transport.

	NAME
	paperlink-recv

	SYNOPSIS
	paperlink-recv recv <qr-in-dir> <ack-out-dir> <incoming-file>

	RETURN VALUE
	  Return EXIT_SUCCESS or EXIT_FAILURE
*/
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cybergarage/go-logger/log"

	"github.com/cybergarage/go-paperlink/paperlink/cmd"
)

func main() {
	log.SetSharedLogger(log.NewStdoutLogger(log.LevelInfo))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Infof("paperlink-recv: interrupted, shutting down")
		cancel()
	}()

	if err := cmd.RootCommand().ExecuteContext(ctx); err != nil {
		log.Errorf("%s", err.Error())
		os.Exit(1)
	}
}
