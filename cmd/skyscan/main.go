// go-skyetek
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-skyetek.
//
// go-skyetek is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-skyetek is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-skyetek; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

// Command skyscan polls a SkyeTek reader with READ_MEM requests and prints
// each raw response as hex.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	skyetek "github.com/ZaparooProject/go-skyetek"
	"github.com/ZaparooProject/go-skyetek/internal/config"
)

var exampleUsage = strings.TrimSpace(`
  skyscan --transport spi --device /dev/spidev0.0 --tag-type 0x01
  skyscan --transport uart --device /dev/ttyUSB0 --num-blocks 4 --count 10
  skyscan --config $HOME/.skyetek/config.yaml
  skyscan --detect
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	cfg := config.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "skyscan",
		Short:         "Continuously send READ_MEM requests to a SkyeTek reader module",
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if err := loadConfig(&cfg, cfgPath, changed); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			configureLogging(cfg.Debug)
			log := skyetek.Logger()
			log.Debug().Interface("config", cfg).Msg("configuration")

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.Detect {
				return runDetect(ctx, stdout)
			}
			return runScan(ctx, &cfg, stdout)
		},
	}
	root.SetOut(stdout)

	flags := root.Flags()
	flags.StringVar(&cfgPath, "config", "", "path to config file, TOML or YAML (default: $HOME/.skyetek/config.toml)")
	flags.StringVar(&cfg.Transport, "transport", cfg.Transport, "bus type: spi, uart or i2c")
	flags.StringVar(&cfg.Device, "device", cfg.Device, "bus or port name (e.g. /dev/spidev0.0, /dev/ttyUSB0, /dev/i2c-1)")
	flags.Int64Var(&cfg.SPISpeed, "speed", cfg.SPISpeed, "SPI clock in Hz")
	flags.IntVar(&cfg.SPIMode, "mode", cfg.SPIMode, "SPI mode (0-3)")
	flags.IntVar(&cfg.BaudRate, "baud", cfg.BaudRate, "UART baud rate")
	flags.IntVar(&cfg.I2CAddress, "address", cfg.I2CAddress, "I2C module address (e.g. 0x3C)")
	flags.IntVar(&cfg.TagType, "tag-type", cfg.TagType, "tag type byte (0-0xFF)")
	flags.IntVar(&cfg.StartBlock, "start-block", cfg.StartBlock, "first block to read (0-0xFFFF)")
	flags.IntVar(&cfg.NumBlocks, "num-blocks", cfg.NumBlocks, "number of blocks to read (0-0xFFFF)")
	flags.DurationVar(&cfg.Interval, "interval", cfg.Interval, "pause between requests")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout for a single exchange")
	flags.IntVar(&cfg.Count, "count", cfg.Count, "stop after this many requests (0 = until interrupted)")
	flags.BoolVar(&cfg.Detect, "detect", cfg.Detect, "list candidate buses and ports, then exit")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log every frame sent and received")

	return root
}

// loadConfig layers the config file and SKYETEK_* variables under any flags
// set on the command line
func loadConfig(cfg *config.Config, cfgPath string, changed map[string]bool) error {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = config.DefaultConfigPath()
	}

	if cfgFile != "" && (cfgPath != "" || config.FileExists(cfgFile)) {
		fc, err := config.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := config.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := config.ApplyEnvConfig(cfg, changed); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}

func configureLogging(debugEnabled bool) {
	level := zerolog.InfoLevel
	if debugEnabled {
		level = zerolog.DebugLevel
	}
	skyetek.SetLogger(skyetek.Logger().Level(level))
	skyetek.SetDebugEnabled(debugEnabled)
}

func main() {
	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		log := skyetek.Logger()
		log.Error().Err(err).Msg("skyscan")
		os.Exit(1)
	}
}
