// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

// Package discord binds the bot core to Discord through the discordgo
// client library. It is the only package that imports discordgo.
//
// [Client] implements [bot.Platform] over the Discord REST API and
// feeds gateway events (member arrivals, messages, interactions) into
// the bot's handlers. Slash commands are declared as data and
// registered with a bulk overwrite at startup; the rule-acceptance
// button is dispatched by its stable component ID, so buttons on
// messages posted before a restart keep working.
//
// REST failures are classified into the core's [bot.ErrPermission] and
// [bot.ErrNotFound] sentinels by inspecting the Discord error code
// (falling back to the HTTP status); everything else passes through as
// a transport error.
package discord
