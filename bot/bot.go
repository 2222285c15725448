// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

package bot

import (
	"context"
	"errors"
	"log/slog"
	"regexp"

	"github.com/dreamteam-hq/concierge/lib/clock"
	"github.com/dreamteam-hq/concierge/store"
)

// RulesAcceptID is the stable identifier of the rule-acceptance button.
// It is baked into every posted rules message, and the component
// handler registered at startup keys on it — so buttons on messages
// posted before a restart keep working after one.
const RulesAcceptID = "concierge:rules-accept"

// Bot dispatches platform events to the handlers. One Bot serves all
// guilds; per-guild state lives in the store.
type Bot struct {
	store    *store.Store
	platform Platform
	clock    clock.Clock
	logger   *slog.Logger
}

// New creates a Bot. A nil clock falls back to the real clock and a
// nil logger to slog.Default().
func New(s *store.Store, platform Platform, clk clock.Clock, logger *slog.Logger) *Bot {
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{store: s, platform: platform, clock: clk, logger: logger}
}

// MemberJoinEvent is a member-arrival gateway event.
type MemberJoinEvent struct {
	GuildID string
	Member  Member
}

// MessageEvent is an inbound message gateway event. GuildID is empty
// for direct messages.
type MessageEvent struct {
	GuildID     string
	ChannelID   string
	MessageID   string
	Author      Member
	Content     string
	Attachments []Attachment
}

// InteractionEvent is a user-initiated command or button press.
// GuildID is empty when the interaction arrives outside any guild.
// Actor carries the invoking member's ID, username, and current roles.
type InteractionEvent struct {
	GuildID   string
	ChannelID string
	Actor     Member
	Reply     Replier
}

// reply sends an interaction response and logs delivery failures.
// Replies are one-shot: a failed reply is not retried.
func (b *Bot) reply(ctx context.Context, event InteractionEvent, content string, ephemeral bool) {
	if err := event.Reply.Reply(ctx, content, ephemeral); err != nil {
		b.logger.Warn("interaction reply failed",
			"guild_id", event.GuildID,
			"user_id", event.Actor.ID,
			"error", err,
		)
	}
}

// channelIDPattern matches a platform snowflake ID.
var channelIDPattern = regexp.MustCompile(`^[0-9]+$`)

// resolveConfiguredChannel resolves a stored channel reference, which
// is either a channel ID or a bare channel name (legacy hand-edited
// configurations name the welcome channel). Returns ErrNotFound when
// the reference is empty or stale — callers treat both as
// "unconfigured".
func (b *Bot) resolveConfiguredChannel(ctx context.Context, guildID, reference string) (Channel, error) {
	if reference == "" {
		return Channel{}, ErrNotFound
	}
	if channelIDPattern.MatchString(reference) {
		return b.platform.ResolveChannel(ctx, guildID, reference)
	}
	return b.platform.ChannelByName(ctx, guildID, reference)
}

// isUnconfigured reports whether a channel resolution outcome means
// "no usable channel": never configured, or configured but since
// deleted.
func isUnconfigured(err error) bool {
	return errors.Is(err, ErrNotFound)
}
