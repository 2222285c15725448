// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

package bot

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/dreamteam-hq/concierge/store"
)

// errBadFormat rejects birthday text matching none of the accepted
// forms. The actor is prompted to retry; nothing is stored.
var errBadFormat = errors.New("unrecognized date format")

// monthsByName resolves textual month forms, keyed lowercase. Both the
// three-letter abbreviation and the full English name are accepted.
var monthsByName = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// parseBirthday normalizes free-form date text to a day/month pair.
// Two forms are accepted, tried in order:
//
//   - day and month as numbers split on "/", "-", or "." (25/10,
//     25-10, 25.10), day within 1..31 and month within 1..12
//   - day and abbreviated or full month name (25-Oct, 25 October)
//
// Anything else, including out-of-range numeric fields, returns
// errBadFormat. The year is never part of the input.
func parseBirthday(text string) (store.Birthday, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(text), func(r rune) bool {
		return r == '/' || r == '-' || r == '.' || r == ' '
	})
	if len(fields) != 2 {
		return store.Birthday{}, errBadFormat
	}

	day, err := strconv.Atoi(fields[0])
	if err != nil || day < 1 || day > 31 {
		return store.Birthday{}, errBadFormat
	}

	if month, err := strconv.Atoi(fields[1]); err == nil {
		if month < 1 || month > 12 {
			return store.Birthday{}, errBadFormat
		}
		return store.Birthday{Day: day, Month: month}, nil
	}

	month, ok := monthsByName[strings.ToLower(fields[1])]
	if !ok {
		return store.Birthday{}, errBadFormat
	}
	return store.Birthday{Day: day, Month: month}, nil
}

// HandleBirthdaySet registers or overwrites the actor's birthday. When
// a member role is configured the actor must hold it; a configured but
// since-deleted role does not gate anyone. The entry is persisted
// before the acknowledgment, so a crash after the reply never loses
// it. All replies are ephemeral.
func (b *Bot) HandleBirthdaySet(ctx context.Context, event InteractionEvent, date string) {
	if event.GuildID == "" {
		b.reply(ctx, event, adminGuildOnlyReply, true)
		return
	}

	cfg := b.store.Guild(event.GuildID)
	if cfg.RequiredRole != "" && !slices.Contains(event.Actor.Roles, cfg.RequiredRole) {
		// The actor lacks the role — but a stale role reference means
		// the gate is effectively unconfigured, so check liveness
		// before refusing.
		exists, err := b.platform.RoleExists(ctx, event.GuildID, cfg.RequiredRole)
		if err != nil {
			b.logger.Warn("checking birthday role gate failed",
				"guild_id", event.GuildID,
				"role_id", cfg.RequiredRole,
				"error", err,
			)
			b.reply(ctx, event, birthdayTransientReply, true)
			return
		}
		if exists {
			b.reply(ctx, event, birthdayRoleGateReply, true)
			return
		}
	}

	birthday, err := parseBirthday(date)
	if err != nil {
		b.reply(ctx, event, birthdayFormatReply, true)
		return
	}

	err = b.store.Update(event.GuildID, func(cfg *store.GuildConfig) error {
		cfg.Birthdays[event.Actor.ID] = birthday
		return nil
	})
	if err != nil {
		b.logger.Error("persisting birthday failed",
			"guild_id", event.GuildID,
			"user_id", event.Actor.ID,
			"error", err,
		)
		b.reply(ctx, event, birthdayTransientReply, true)
		return
	}

	b.reply(ctx, event, birthdaySetReply(birthday.Day, birthday.Month), true)
}

// HandleBirthdayQuery answers /birthday me: the actor's own stored
// value, or an explicit "not set". Always ephemeral.
func (b *Bot) HandleBirthdayQuery(ctx context.Context, event InteractionEvent) {
	if event.GuildID == "" {
		b.reply(ctx, event, adminGuildOnlyReply, true)
		return
	}

	birthday, ok := b.store.Guild(event.GuildID).Birthdays[event.Actor.ID]
	if !ok {
		b.reply(ctx, event, birthdayNotSetReply, true)
		return
	}
	b.reply(ctx, event, birthdayQueryReply(birthday.Day, birthday.Month), true)
}

// HandleBirthdayRemove deletes the actor's entry if present, persists,
// and reports whether anything was actually removed.
func (b *Bot) HandleBirthdayRemove(ctx context.Context, event InteractionEvent) {
	if event.GuildID == "" {
		b.reply(ctx, event, adminGuildOnlyReply, true)
		return
	}

	removed := false
	err := b.store.Update(event.GuildID, func(cfg *store.GuildConfig) error {
		_, removed = cfg.Birthdays[event.Actor.ID]
		delete(cfg.Birthdays, event.Actor.ID)
		return nil
	})
	if err != nil {
		b.logger.Error("removing birthday failed",
			"guild_id", event.GuildID,
			"user_id", event.Actor.ID,
			"error", err,
		)
		b.reply(ctx, event, birthdayTransientReply, true)
		return
	}

	if removed {
		b.reply(ctx, event, birthdayRemovedReply, true)
	} else {
		b.reply(ctx, event, birthdayNothingToRemoveReply, true)
	}
}
