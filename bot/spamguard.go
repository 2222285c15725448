// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

package bot

import (
	"context"
	"unicode/utf8"
)

// HandleMessage inspects every inbound guild message and relocates
// messages posted by other automated accounts into the configured spam
// channel. The whole path is best-effort: any failure is logged and
// swallowed, because this handler sits in front of all message
// processing and must never take the process down with it.
func (b *Bot) HandleMessage(ctx context.Context, event MessageEvent) {
	// Direct messages are never relocated.
	if event.GuildID == "" {
		return
	}
	// Our own messages are exempt, bot account or not.
	if event.Author.ID == b.platform.BotUserID() {
		return
	}
	if !event.Author.Bot {
		return
	}

	cfg := b.store.Guild(event.GuildID)
	if cfg.SpamChannel == "" {
		return
	}

	// Never relocate out of the channels the concierge itself posts
	// into. Relocating the spam channel into itself would loop.
	protected := map[string]bool{cfg.SpamChannel: true}
	if cfg.StaffLogChannel != "" {
		protected[cfg.StaffLogChannel] = true
	}
	if cfg.BirthdayChannel != "" {
		protected[cfg.BirthdayChannel] = true
	}
	if protected[event.ChannelID] {
		return
	}

	spamChannel, err := b.platform.ResolveChannel(ctx, event.GuildID, cfg.SpamChannel)
	if err != nil {
		if !isUnconfigured(err) {
			b.logger.Warn("resolving spam channel failed",
				"guild_id", event.GuildID,
				"reference", cfg.SpamChannel,
				"error", err,
			)
		}
		return
	}

	// Capture before deleting: the message is gone afterwards.
	preview := truncate(event.Content, previewLimit)
	notice := relocationNotice(event.ChannelID, event.Author, preview, event.Attachments)

	if err := b.platform.DeleteMessage(ctx, event.ChannelID, event.MessageID); err != nil {
		// Keep going: forwarding the copy is still worthwhile even
		// when the original could not be removed.
		b.logger.Warn("deleting foreign bot message failed",
			"guild_id", event.GuildID,
			"channel_id", event.ChannelID,
			"message_id", event.MessageID,
			"error", err,
		)
	}

	if err := b.platform.SendMessage(ctx, spamChannel.ID, notice); err != nil {
		b.logger.Warn("relocation notice failed",
			"guild_id", event.GuildID,
			"channel_id", spamChannel.ID,
			"error", err,
		)
	}
}

// truncate caps s at limit runes, appending an ellipsis when content
// was dropped. Runes, not bytes: cutting mid-encoding would corrupt
// the preview.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "…"
}
