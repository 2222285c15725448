// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

// Package bot contains the platform-independent core of the concierge:
// the event handlers, the join-rank calculator, the birthday subsystem,
// and the daily announcer.
//
// Handlers never touch the Discord client library directly. All
// platform I/O goes through the [Platform] interface and all
// interaction replies through [Replier], so every handler is testable
// against an in-memory fake. The discord package adapts gateway events
// into the event structs defined here and calls the matching Handle*
// method; it is the only package that imports discordgo.
//
// Handlers run to completion once invoked: there are no retries and no
// internal timeouts. A failed platform call is terminal for that event.
// Best-effort paths (greetings, relocation, announcements) log and
// swallow failures; request/response paths surface them to the actor
// as an ephemeral reply.
package bot
