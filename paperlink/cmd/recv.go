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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cybergarage/go-paperlink/paperlink/arq"
	"github.com/cybergarage/go-paperlink/paperlink/camera"
	"github.com/cybergarage/go-paperlink/paperlink/config"
	"github.com/cybergarage/go-paperlink/paperlink/spool"
	"github.com/cybergarage/go-paperlink/paperlink/visualio"
)

func init() {
	rootCmd.AddCommand(recvCmd)
}

var recvCmd = &cobra.Command{ // nolint:exhaustruct
	Use:   "recv <qr-in-dir> <ack-out-dir> <incoming-file>",
	Short: "Receive data over the visual channel.",
	Long: "Watch qr-in-dir for scanned data packet codes, append delivered bytes " +
		"to incoming-file, and render acknowledgements as QR codes in ack-out-dir.",
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		qrInDir, ackOutDir, incomingPath := args[0], args[1], args[2]
		cfg := config.FromViper(viper.GetViper())
		if err := cfg.Validate(); err != nil {
			return err
		}

		frames, err := camera.NewDirSource(qrInDir, cfg.PollInterval)
		if err != nil {
			return err
		}
		defer frames.Close()

		emitter, err := visualio.NewEmitter(ackOutDir)
		if err != nil {
			return err
		}

		sink, err := spool.NewIncomingAppender(incomingPath)
		if err != nil {
			return err
		}
		defer sink.Close()

		receiver := arq.NewReceiver(frames, emitter, sink)
		return receiver.Run(cmd.Context())
	},
}
