// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

// concierge is a community-management bot for Discord servers: it
// greets new members with their member number, posts a rules message
// whose button grants the configured member role, relocates bot spam
// into a dedicated channel, and announces member birthdays once a day.
//
// The bot token comes from the DISCORD_TOKEN environment variable
// (optionally via a .env file); everything else lives in the YAML
// configuration file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/dreamteam-hq/concierge/bot"
	"github.com/dreamteam-hq/concierge/discord"
	"github.com/dreamteam-hq/concierge/lib/clock"
	"github.com/dreamteam-hq/concierge/lib/config"
	"github.com/dreamteam-hq/concierge/store"
)

const version = "0.3.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  string
		envFile     string
		showVersion bool
	)

	flagSet := pflag.NewFlagSet("concierge", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "concierge.yaml", "path to the YAML configuration file")
	flagSet.StringVar(&envFile, "env-file", "", "env file to load before reading DISCORD_TOKEN (default: .env if present)")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if showVersion {
		fmt.Printf("concierge %s\n", version)
		return nil
	}

	// An explicitly named env file must exist; the implicit .env is
	// optional.
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		return fmt.Errorf("DISCORD_TOKEN is not set")
	}

	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	hour, minute, err := cfg.AnnounceHourMinute()
	if err != nil {
		return err
	}
	location, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(cfg.StorePath, logger)
	if err != nil {
		return fmt.Errorf("opening state store: %w", err)
	}
	logger.Info("state store open", "path", cfg.StorePath, "guilds", len(st.GuildIDs()))

	client, err := discord.New(token, logger)
	if err != nil {
		return err
	}

	clk := clock.Real()
	b := bot.New(st, client, clk, logger)

	// Handlers must be registered before the gateway opens so no
	// event is missed between connect and bind.
	client.Bind(ctx, b)

	if err := client.Open(); err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("closing gateway connection", "error", err)
		}
	}()
	logger.Info("gateway connected", "bot_user", client.BotUserID(), "version", version)

	if err := client.RegisterCommands(ctx); err != nil {
		return err
	}

	announcer := bot.NewAnnouncer(st, client, clk, logger, hour, minute, location)
	go announcer.Run(ctx)

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}
