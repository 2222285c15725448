// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

package bot

import (
	"context"

	"github.com/dreamteam-hq/concierge/store"
)

// The administrative command surface: one setter per configured
// reference, plus posting the rules message. Command-level permission
// gating (administrator only) is enforced by the platform's command
// registration; these handlers only validate guild context.
//
// Every setter persists before acknowledging, so an acknowledged
// change survives a crash immediately after.

// HandleSetWelcomeChannel stores the onboarding greeting channel.
func (b *Bot) HandleSetWelcomeChannel(ctx context.Context, event InteractionEvent, channelID string) {
	b.setReference(ctx, event, "the welcome channel", channelMention(channelID), func(cfg *store.GuildConfig) {
		cfg.WelcomeChannel = channelID
	})
}

// HandleSetRulesRole stores the role granted on rule acceptance.
func (b *Bot) HandleSetRulesRole(ctx context.Context, event InteractionEvent, roleID string) {
	b.setReference(ctx, event, "the member role", "<@&"+roleID+">", func(cfg *store.GuildConfig) {
		cfg.RequiredRole = roleID
	})
}

// HandleSetStaffLogChannel stores the audit notification channel.
func (b *Bot) HandleSetStaffLogChannel(ctx context.Context, event InteractionEvent, channelID string) {
	b.setReference(ctx, event, "the staff-log channel", channelMention(channelID), func(cfg *store.GuildConfig) {
		cfg.StaffLogChannel = channelID
	})
}

// HandleSetBirthdayChannel stores the daily announcement channel.
func (b *Bot) HandleSetBirthdayChannel(ctx context.Context, event InteractionEvent, channelID string) {
	b.setReference(ctx, event, "the birthday channel", channelMention(channelID), func(cfg *store.GuildConfig) {
		cfg.BirthdayChannel = channelID
	})
}

// HandleSetSpamChannel stores the relocation target channel.
func (b *Bot) HandleSetSpamChannel(ctx context.Context, event InteractionEvent, channelID string) {
	b.setReference(ctx, event, "the spam channel", channelMention(channelID), func(cfg *store.GuildConfig) {
		cfg.SpamChannel = channelID
	})
}

// setReference runs the store mutation and acknowledges ephemerally.
func (b *Bot) setReference(ctx context.Context, event InteractionEvent, what, mentionText string, mutate func(*store.GuildConfig)) {
	if event.GuildID == "" {
		b.reply(ctx, event, adminGuildOnlyReply, true)
		return
	}

	err := b.store.Update(event.GuildID, func(cfg *store.GuildConfig) error {
		mutate(cfg)
		return nil
	})
	if err != nil {
		b.logger.Error("persisting configuration failed",
			"guild_id", event.GuildID,
			"setting", what,
			"error", err,
		)
		b.reply(ctx, event, birthdayTransientReply, true)
		return
	}

	b.reply(ctx, event, referenceSetReply(what, mentionText), true)
}

// HandlePostRules posts the rules message with the acceptance button
// into the channel the command was invoked from.
func (b *Bot) HandlePostRules(ctx context.Context, event InteractionEvent) {
	if event.GuildID == "" {
		b.reply(ctx, event, adminGuildOnlyReply, true)
		return
	}

	content, buttonLabel := RulesMessage()
	if err := b.platform.SendButtonMessage(ctx, event.ChannelID, content, buttonLabel, RulesAcceptID); err != nil {
		b.logger.Warn("posting rules message failed",
			"guild_id", event.GuildID,
			"channel_id", event.ChannelID,
			"error", err,
		)
		b.reply(ctx, event, rulesTransientReply, true)
		return
	}
	b.reply(ctx, event, "Rules message posted. 📋", true)
}

// HandleUnknownCommand answers interactions whose command the process
// no longer recognizes (typically leftovers from an older deployment).
func (b *Bot) HandleUnknownCommand(ctx context.Context, event InteractionEvent) {
	b.reply(ctx, event, unknownCommandReply, true)
}
