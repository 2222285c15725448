// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

package bot

import (
	"context"
	"errors"
)

// HandleMemberJoin greets a newly arrived member with their join rank.
// Delivery is best-effort with one fallback: the configured welcome
// channel first, the member's DMs when no channel is usable or the
// channel post is refused, and silence when the DM is refused too.
// Greetings are one-shot notifications — nothing is retried.
func (b *Bot) HandleMemberJoin(ctx context.Context, event MemberJoinEvent) {
	if event.Member.Bot {
		return
	}

	rank := b.rankOf(ctx, event.GuildID, event.Member.ID)
	greeting := welcomeMessage(event.Member.ID, rank)

	cfg := b.store.Guild(event.GuildID)
	channel, err := b.resolveConfiguredChannel(ctx, event.GuildID, cfg.WelcomeChannel)
	if err == nil {
		err = b.platform.SendMessage(ctx, channel.ID, greeting)
		if err == nil {
			return
		}
		if !errors.Is(err, ErrPermission) {
			// Transport failure on a one-shot notification: drop.
			b.logger.Warn("welcome message failed",
				"guild_id", event.GuildID,
				"channel_id", channel.ID,
				"error", err,
			)
			return
		}
		// Permission refusal falls through to the DM path.
	} else if !isUnconfigured(err) {
		b.logger.Warn("resolving welcome channel failed",
			"guild_id", event.GuildID,
			"reference", cfg.WelcomeChannel,
			"error", err,
		)
		return
	}

	if err := b.platform.SendDirectMessage(ctx, event.Member.ID, greeting); err != nil {
		if errors.Is(err, ErrPermission) {
			// The member blocks DMs. The greeting is dropped silently.
			b.logger.Debug("greeting dropped, member refuses DMs",
				"guild_id", event.GuildID,
				"user_id", event.Member.ID,
			)
			return
		}
		b.logger.Warn("greeting DM failed",
			"guild_id", event.GuildID,
			"user_id", event.Member.ID,
			"error", err,
		)
	}
}

// HandleCheck answers the /check command: the invoker's own join rank,
// computed on demand, visible only to them.
func (b *Bot) HandleCheck(ctx context.Context, event InteractionEvent) {
	if event.GuildID == "" {
		b.reply(ctx, event, adminGuildOnlyReply, true)
		return
	}
	rank := b.rankOf(ctx, event.GuildID, event.Actor.ID)
	b.reply(ctx, event, checkMessage(rank), true)
}

// rankOf fetches the guild member list and computes the target's join
// rank. Returns 0 (unknown) when the member list is unavailable or the
// target is missing from it.
func (b *Bot) rankOf(ctx context.Context, guildID, userID string) int {
	members, err := b.platform.GuildMembers(ctx, guildID)
	if err != nil {
		b.logger.Warn("listing guild members failed",
			"guild_id", guildID,
			"error", err,
		)
		return 0
	}
	return memberRank(members, userID, b.clock.Now())
}
