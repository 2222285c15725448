// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

package bot

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/dreamteam-hq/concierge/lib/clock"
	"github.com/dreamteam-hq/concierge/store"
)

// Announcer fires the daily birthday announcement. It polls the clock
// at one-minute granularity and sweeps all guilds when the local time
// in the reference zone is exactly the configured hour and minute.
//
// The once-per-day guarantee rides on that exact-minute match: the
// announcement instant occurs once per calendar day on the reference
// clock, so each guild gets at most one announcement per day. The
// flip side is that downtime spanning the announcement instant skips
// that day entirely — the announcement is never delivered late and
// never twice. There is no "already announced today" record.
//
// The announcer only reads guild configuration. It runs concurrently
// with the event handlers and needs no coordination beyond the store's
// own locking.
type Announcer struct {
	store    *store.Store
	platform Platform
	clock    clock.Clock
	logger   *slog.Logger

	hour     int
	minute   int
	location *time.Location
}

// NewAnnouncer creates an Announcer firing at hour:minute in location.
func NewAnnouncer(s *store.Store, platform Platform, clk clock.Clock, logger *slog.Logger, hour, minute int, location *time.Location) *Announcer {
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Announcer{
		store:    s,
		platform: platform,
		clock:    clk,
		logger:   logger,
		hour:     hour,
		minute:   minute,
		location: location,
	}
}

// Run polls until ctx is cancelled. Call it in its own goroutine.
func (a *Announcer) Run(ctx context.Context) {
	ticker := a.clock.NewTicker(time.Minute)
	defer ticker.Stop()

	a.logger.Info("birthday announcer running",
		"at", time.Date(0, 1, 1, a.hour, a.minute, 0, 0, time.UTC).Format("15:04"),
		"zone", a.location.String(),
	)

	for {
		select {
		case <-ctx.Done():
			return
		case tick := <-ticker.C:
			a.sweep(ctx, tick)
		}
	}
}

// sweep announces birthdays in every configured guild if now is the
// announcement instant, and is a cheap no-op otherwise. Per-guild
// failures are logged and the sweep continues with the next guild.
func (a *Announcer) sweep(ctx context.Context, now time.Time) {
	local := now.In(a.location)
	if local.Hour() != a.hour || local.Minute() != a.minute {
		return
	}

	day, month := local.Day(), int(local.Month())

	for _, guildID := range a.store.GuildIDs() {
		cfg := a.store.Guild(guildID)
		if cfg.BirthdayChannel == "" {
			continue
		}

		channel, err := a.platform.ResolveChannel(ctx, guildID, cfg.BirthdayChannel)
		if err != nil {
			if !isUnconfigured(err) {
				a.logger.Warn("resolving birthday channel failed",
					"guild_id", guildID,
					"reference", cfg.BirthdayChannel,
					"error", err,
				)
			}
			continue
		}

		celebrants := celebrantsOn(cfg.Birthdays, day, month)
		if len(celebrants) == 0 {
			continue
		}

		if err := a.platform.SendMessage(ctx, channel.ID, announcementMessage(celebrants)); err != nil {
			a.logger.Warn("birthday announcement failed",
				"guild_id", guildID,
				"channel_id", channel.ID,
				"error", err,
			)
			continue
		}
		a.logger.Info("birthday announcement posted",
			"guild_id", guildID,
			"channel_id", channel.ID,
			"celebrants", len(celebrants),
		)
	}
}

// celebrantsOn returns the IDs of users whose stored birthday equals
// the given day and month, sorted so one cohort always produces one
// identical announcement.
func celebrantsOn(birthdays map[string]store.Birthday, day, month int) []string {
	var userIDs []string
	for userID, birthday := range birthdays {
		if birthday.Day == day && birthday.Month == month {
			userIDs = append(userIDs, userID)
		}
	}
	sort.Strings(userIDs)
	return userIDs
}
