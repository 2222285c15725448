// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

package bot

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for platform failure classification. The discord
// adapter wraps client errors into these; handlers branch with
// errors.Is and never inspect transport details. Anything that matches
// neither sentinel is a transport or availability error.
var (
	// ErrPermission marks an operation the process is not privileged
	// to perform: posting into a channel it cannot see, messaging a
	// user who blocks DMs, granting a role above its own.
	ErrPermission = errors.New("missing permission")

	// ErrNotFound marks a reference to an entity that no longer
	// exists. Handlers treat configured references that resolve to
	// ErrNotFound as unconfigured.
	ErrNotFound = errors.New("not found")
)

// Member is a guild member as the handlers see one.
type Member struct {
	// ID is the platform user ID.
	ID string

	// Username is the display name used in audit lines.
	Username string

	// Bot reports whether the account is automated.
	Bot bool

	// JoinedAt is the member's join timestamp. Zero when the platform
	// did not supply one.
	JoinedAt time.Time

	// Roles holds the IDs of the member's current roles. Populated on
	// interaction events; empty on member lists unless needed.
	Roles []string
}

// Channel is a resolved channel reference.
type Channel struct {
	ID   string
	Name string
}

// Attachment is a file reference carried on a message.
type Attachment struct {
	URL      string
	Filename string
}

// Platform is the outbound surface the handlers use. The discord
// package provides the production implementation; tests use a fake.
//
// Every method takes a context and completes or fails within the
// client library's own bounded time. Implementations must wrap
// permission and deleted-entity failures with [ErrPermission] and
// [ErrNotFound].
type Platform interface {
	// BotUserID returns the user ID of the process's own account.
	BotUserID() string

	// GuildMembers returns the full current member list of a guild.
	GuildMembers(ctx context.Context, guildID string) ([]Member, error)

	// ResolveChannel resolves a channel ID to a live channel. Returns
	// an error wrapping ErrNotFound when the channel no longer exists
	// or belongs to a different guild.
	ResolveChannel(ctx context.Context, guildID, channelID string) (Channel, error)

	// ChannelByName finds a guild text channel by exact name. Returns
	// an error wrapping ErrNotFound when no channel matches.
	ChannelByName(ctx context.Context, guildID, name string) (Channel, error)

	// RoleExists reports whether the role still exists in the guild.
	RoleExists(ctx context.Context, guildID, roleID string) (bool, error)

	// SendMessage posts content to a channel.
	SendMessage(ctx context.Context, channelID, content string) error

	// SendButtonMessage posts content to a channel with a single
	// action button attached. customID is the stable identifier the
	// press event carries back.
	SendButtonMessage(ctx context.Context, channelID, content, buttonLabel, customID string) error

	// SendDirectMessage delivers content to a user's direct channel.
	SendDirectMessage(ctx context.Context, userID, content string) error

	// DeleteMessage removes a message from a channel.
	DeleteMessage(ctx context.Context, channelID, messageID string) error

	// GrantRole adds a role to a guild member.
	GrantRole(ctx context.Context, guildID, userID, roleID string) error
}

// Replier delivers the reply to an interaction (command or button
// press). Replies are bound to the interaction token, not a channel,
// so they travel on the event rather than through Platform. Ephemeral
// replies are visible only to the actor.
type Replier interface {
	Reply(ctx context.Context, content string, ephemeral bool) error
}
