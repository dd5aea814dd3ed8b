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

package cmd

import (
	"github.com/cybergarage/go-logger/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cybergarage/go-paperlink/paperlink/arq"
	"github.com/cybergarage/go-paperlink/paperlink/camera"
	"github.com/cybergarage/go-paperlink/paperlink/config"
	"github.com/cybergarage/go-paperlink/paperlink/spool"
	"github.com/cybergarage/go-paperlink/paperlink/visualio"
)

func init() {
	rootCmd.AddCommand(sendCmd)
}

var sendCmd = &cobra.Command{ // nolint:exhaustruct
	Use:   "send <spool-dir> <qr-out-dir> <ack-in-dir>",
	Short: "Send request files over the visual channel.",
	Long: "Drain request_*.json files from spool-dir, render each chunk as a QR " +
		"code in qr-out-dir, and watch ack-in-dir for scanned acknowledgement codes.",
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		spoolDir, qrOutDir, ackInDir := args[0], args[1], args[2]
		cfg := config.FromViper(viper.GetViper())
		if err := cfg.Validate(); err != nil {
			return err
		}

		queue := spool.NewOutgoingQueue(spoolDir, "request_*.json", cfg.DataSize())

		emitter, err := visualio.NewEmitter(qrOutDir)
		if err != nil {
			return err
		}

		frames, err := camera.NewDirSource(ackInDir, cfg.PollInterval)
		if err != nil {
			return err
		}
		defer frames.Close()

		sender := arq.NewSender(queue, emitter, frames, cfg.Timeout, 0)

		result, err := sender.Run(cmd.Context())
		if err != nil {
			return err
		}
		log.Infof("send: session %s", result)
		return nil
	},
}
