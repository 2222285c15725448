// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the concierge
// process.
//
// Configuration is loaded from a single file specified by the --config
// flag (via [LoadFile]). There are no fallbacks, no ~/.config
// discovery, and no automatic file search. This ensures deterministic,
// auditable configuration with no hidden overrides. The Discord token
// is deliberately NOT part of this file: it is a credential and comes
// only from the DISCORD_TOKEN environment variable.
//
// Key exports:
//
//   - [Config] -- store path, announcement time, reference time zone,
//     log level
//   - [Default] -- returns a Config with development defaults
//   - [LoadFile] -- the single entry point for loading
//
// This package depends on no other concierge packages.
package config
