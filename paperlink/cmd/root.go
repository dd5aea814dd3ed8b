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

// Package cmd wires the paperlink core to the command line: a root cobra
// command carrying shared flags, plus the send and recv subcommands.
package cmd

import (
	"github.com/cybergarage/go-logger/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cybergarage/go-paperlink/paperlink"
	"github.com/cybergarage/go-paperlink/paperlink/config"
)

// ProgramName is the CLI binary name reported in --version and logs.
const ProgramName = "paperlink"

var rootCmd = &cobra.Command{ // nolint:exhaustruct
	Use:               ProgramName,
	Version:           paperlink.Version,
	Short:             "",
	Long:              "",
	DisableAutoGenTag: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.SetSharedLogger(nil)
		verbose := viper.GetBool(config.VerboseParam)
		debug := viper.GetBool(config.DebugParam)
		if debug {
			verbose = true
		}
		if verbose {
			log.Infof("%s version %s", ProgramName, paperlink.Version)
			log.Infof("verbose:%t, debug:%t", verbose, debug)
			if debug {
				log.SetSharedLogger(log.NewStdoutLogger(log.LevelDebug))
			} else {
				log.SetSharedLogger(log.NewStdoutLogger(log.LevelInfo))
			}
		}
		return nil
	},
}

// RootCommand returns the root command, for embedding in a binary's main.go.
func RootCommand() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	viper.SetEnvPrefix(config.EnvPrefix)
	config.SetDefaults(viper.GetViper())

	rootCmd.PersistentFlags().Int(config.PacketSizeParam, paperlink.PacketSize, "total wire size of a data packet, in bytes")
	viper.BindPFlag(config.PacketSizeParam, rootCmd.PersistentFlags().Lookup(config.PacketSizeParam))
	viper.BindEnv(config.PacketSizeParam) // PAPERLINK_PACKET_SIZE

	rootCmd.PersistentFlags().Duration(config.TimeoutParam, paperlink.DefaultTimeout, "sender retransmission timeout")
	viper.BindPFlag(config.TimeoutParam, rootCmd.PersistentFlags().Lookup(config.TimeoutParam))
	viper.BindEnv(config.TimeoutParam) // PAPERLINK_TIMEOUT

	rootCmd.PersistentFlags().Duration(config.PollIntervalParam, paperlink.DefaultPollInterval, "receiver frame-polling cadence")
	viper.BindPFlag(config.PollIntervalParam, rootCmd.PersistentFlags().Lookup(config.PollIntervalParam))
	viper.BindEnv(config.PollIntervalParam) // PAPERLINK_POLL_INTERVAL

	rootCmd.PersistentFlags().Bool(config.VerboseParam, false, "enable verbose output")
	viper.BindPFlag(config.VerboseParam, rootCmd.PersistentFlags().Lookup(config.VerboseParam))
	viper.BindEnv(config.VerboseParam) // PAPERLINK_VERBOSE

	rootCmd.PersistentFlags().Bool(config.DebugParam, false, "enable debug output")
	viper.BindPFlag(config.DebugParam, rootCmd.PersistentFlags().Lookup(config.DebugParam))
	viper.BindEnv(config.DebugParam) // PAPERLINK_DEBUG
}
