// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

package bot

import (
	"context"
	"errors"
	"slices"
)

// HandleRulesAccept processes a press of the rule-acceptance button.
// The branches are evaluated in order and short-circuit on the first
// that applies; every reply except the audit line is ephemeral.
// Pressing the button repeatedly is safe: an actor who already holds
// the role gets the same "already granted" acknowledgment every time
// with no further side effect.
func (b *Bot) HandleRulesAccept(ctx context.Context, event InteractionEvent) {
	// 1. Outside any guild there is no role to grant.
	if event.GuildID == "" {
		b.reply(ctx, event, rulesNoGuildReply, true)
		return
	}

	cfg := b.store.Guild(event.GuildID)

	// 2. No role configured.
	if cfg.RequiredRole == "" {
		b.reply(ctx, event, rulesNotConfiguredReply, true)
		return
	}

	// 3. Role configured but since deleted.
	exists, err := b.platform.RoleExists(ctx, event.GuildID, cfg.RequiredRole)
	if err != nil {
		b.logger.Warn("checking configured role failed",
			"guild_id", event.GuildID,
			"role_id", cfg.RequiredRole,
			"error", err,
		)
		b.reply(ctx, event, rulesTransientReply, true)
		return
	}
	if !exists {
		b.reply(ctx, event, rulesStaleRoleReply, true)
		return
	}

	// 4. Already granted: acknowledge idempotently.
	if slices.Contains(event.Actor.Roles, cfg.RequiredRole) {
		b.reply(ctx, event, rulesAlreadyGrantedReply, true)
		return
	}

	// 5/6. Attempt the grant.
	if err := b.platform.GrantRole(ctx, event.GuildID, event.Actor.ID, cfg.RequiredRole); err != nil {
		if errors.Is(err, ErrPermission) {
			b.reply(ctx, event, rulesPermissionReply, true)
			return
		}
		b.logger.Warn("role grant failed",
			"guild_id", event.GuildID,
			"user_id", event.Actor.ID,
			"role_id", cfg.RequiredRole,
			"error", err,
		)
		b.reply(ctx, event, rulesTransientReply, true)
		return
	}

	b.reply(ctx, event, rulesGrantedReply, true)
	b.auditRulesAccepted(ctx, event.GuildID, cfg.StaffLogChannel, event.Actor)
}

// auditRulesAccepted posts the audit line to the staff-log channel.
// Auditing is best-effort: an unset or stale channel is skipped, a
// failed post is logged and swallowed — the grant already succeeded
// and must not look failed to the actor.
func (b *Bot) auditRulesAccepted(ctx context.Context, guildID, staffLogChannel string, actor Member) {
	channel, err := b.resolveConfiguredChannel(ctx, guildID, staffLogChannel)
	if err != nil {
		if !isUnconfigured(err) {
			b.logger.Warn("resolving staff-log channel failed",
				"guild_id", guildID,
				"reference", staffLogChannel,
				"error", err,
			)
		}
		return
	}
	if err := b.platform.SendMessage(ctx, channel.ID, auditAcceptedMessage(actor)); err != nil {
		b.logger.Warn("audit notification failed",
			"guild_id", guildID,
			"channel_id", channel.ID,
			"error", err,
		)
	}
}

// RulesMessage returns the text and button label of the rules post.
// The discord adapter attaches the button with [RulesAcceptID] as its
// component ID.
func RulesMessage() (content, buttonLabel string) {
	return rulesMessage, rulesButtonLabel
}
