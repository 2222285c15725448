// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

package bot

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dreamteam-hq/concierge/lib/clock"
	"github.com/dreamteam-hq/concierge/store"
)

func TestSettersPersistReferences(t *testing.T) {
	tests := []struct {
		name   string
		invoke func(*Bot, context.Context, InteractionEvent)
		read   func(store.GuildConfig) string
	}{
		{
			"welcome_channel",
			func(b *Bot, ctx context.Context, e InteractionEvent) { b.HandleSetWelcomeChannel(ctx, e, "ref-1") },
			func(cfg store.GuildConfig) string { return cfg.WelcomeChannel },
		},
		{
			"rules_role",
			func(b *Bot, ctx context.Context, e InteractionEvent) { b.HandleSetRulesRole(ctx, e, "ref-1") },
			func(cfg store.GuildConfig) string { return cfg.RequiredRole },
		},
		{
			"staff_log_channel",
			func(b *Bot, ctx context.Context, e InteractionEvent) { b.HandleSetStaffLogChannel(ctx, e, "ref-1") },
			func(cfg store.GuildConfig) string { return cfg.StaffLogChannel },
		},
		{
			"birthday_channel",
			func(b *Bot, ctx context.Context, e InteractionEvent) { b.HandleSetBirthdayChannel(ctx, e, "ref-1") },
			func(cfg store.GuildConfig) string { return cfg.BirthdayChannel },
		},
		{
			"spam_channel",
			func(b *Bot, ctx context.Context, e InteractionEvent) { b.HandleSetSpamChannel(ctx, e, "ref-1") },
			func(cfg store.GuildConfig) string { return cfg.SpamChannel },
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "state.json")
			s, err := store.Open(path, nil)
			if err != nil {
				t.Fatalf("opening store: %v", err)
			}
			b := New(s, newFakePlatform(), clock.Fake(time.Time{}), discardLogger())
			replier := &fakeReplier{}

			test.invoke(b, context.Background(), InteractionEvent{
				GuildID: testGuild,
				Actor:   Member{ID: "admin"},
				Reply:   replier,
			})

			if reply := replier.last(t); !reply.Ephemeral {
				t.Error("acknowledgment is not ephemeral")
			}

			// The change must be on disk before the acknowledgment, so
			// a fresh Open observes it.
			reopened, err := store.Open(path, nil)
			if err != nil {
				t.Fatalf("reopening store: %v", err)
			}
			if got := test.read(reopened.Guild(testGuild)); got != "ref-1" {
				t.Errorf("persisted reference = %q, want ref-1", got)
			}
		})
	}
}

func TestSettersRequireGuildContext(t *testing.T) {
	b, s := newTestBot(t, newFakePlatform())
	replier := &fakeReplier{}

	b.HandleSetWelcomeChannel(context.Background(), InteractionEvent{Actor: Member{ID: "admin"}, Reply: replier}, "ref-1")

	if reply := replier.last(t); reply.Content != adminGuildOnlyReply {
		t.Errorf("reply = %q, want guild-only notice", reply.Content)
	}
	if got := s.Guild(testGuild).WelcomeChannel; got != "" {
		t.Errorf("reference stored without guild context: %q", got)
	}
}
