// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/dreamteam-hq/concierge/bot"
)

// memberPageSize is the Discord API maximum for one guild-members
// page.
const memberPageSize = 1000

// Client wraps a discordgo session and implements bot.Platform.
type Client struct {
	session *discordgo.Session
	logger  *slog.Logger
}

// New creates a Client for the given bot token. The session is not
// connected yet; call Open.
func New(token string, logger *slog.Logger) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("discord: token is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord: creating session: %w", err)
	}

	// Member lists, message content, and join events all require
	// privileged intents; the bot is useless without them.
	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMembers |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent

	return &Client{session: session, logger: logger}, nil
}

// Open connects to the gateway. It returns after the ready event, so
// BotUserID is valid once Open succeeds.
func (c *Client) Open() error {
	if err := c.session.Open(); err != nil {
		return fmt.Errorf("discord: opening gateway connection: %w", err)
	}
	return nil
}

// Close tears down the gateway connection.
func (c *Client) Close() error {
	return c.session.Close()
}

// BotUserID returns the connected account's user ID, or "" before
// Open.
func (c *Client) BotUserID() string {
	if c.session.State == nil || c.session.State.User == nil {
		return ""
	}
	return c.session.State.User.ID
}

// GuildMembers fetches the full member list, paging through the API
// limit.
func (c *Client) GuildMembers(ctx context.Context, guildID string) ([]bot.Member, error) {
	var members []bot.Member
	after := ""
	for {
		page, err := c.session.GuildMembers(guildID, after, memberPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, classify(fmt.Errorf("discord: listing members of guild %s: %w", guildID, err))
		}
		for _, member := range page {
			members = append(members, memberFromDiscord(member))
		}
		if len(page) < memberPageSize {
			return members, nil
		}
		after = page[len(page)-1].User.ID
	}
}

// ResolveChannel resolves a channel ID, requiring it to belong to the
// given guild.
func (c *Client) ResolveChannel(ctx context.Context, guildID, channelID string) (bot.Channel, error) {
	channel, err := c.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return bot.Channel{}, classify(fmt.Errorf("discord: resolving channel %s: %w", channelID, err))
	}
	if channel.GuildID != guildID {
		return bot.Channel{}, fmt.Errorf("discord: channel %s belongs to another guild: %w", channelID, bot.ErrNotFound)
	}
	return bot.Channel{ID: channel.ID, Name: channel.Name}, nil
}

// ChannelByName finds a guild text channel by exact name.
func (c *Client) ChannelByName(ctx context.Context, guildID, name string) (bot.Channel, error) {
	channels, err := c.session.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return bot.Channel{}, classify(fmt.Errorf("discord: listing channels of guild %s: %w", guildID, err))
	}
	for _, channel := range channels {
		if channel.Type == discordgo.ChannelTypeGuildText && channel.Name == name {
			return bot.Channel{ID: channel.ID, Name: channel.Name}, nil
		}
	}
	return bot.Channel{}, fmt.Errorf("discord: no text channel named %q in guild %s: %w", name, guildID, bot.ErrNotFound)
}

// RoleExists reports whether the role is still present in the guild.
func (c *Client) RoleExists(ctx context.Context, guildID, roleID string) (bool, error) {
	roles, err := c.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return false, classify(fmt.Errorf("discord: listing roles of guild %s: %w", guildID, err))
	}
	for _, role := range roles {
		if role.ID == roleID {
			return true, nil
		}
	}
	return false, nil
}

// SendMessage posts content to a channel.
func (c *Client) SendMessage(ctx context.Context, channelID, content string) error {
	_, err := c.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	if err != nil {
		return classify(fmt.Errorf("discord: sending message to channel %s: %w", channelID, err))
	}
	return nil
}

// SendButtonMessage posts content with a single primary button.
func (c *Client) SendButtonMessage(ctx context.Context, channelID, content, buttonLabel, customID string) error {
	_, err := c.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    buttonLabel,
						Style:    discordgo.PrimaryButton,
						CustomID: customID,
					},
				},
			},
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return classify(fmt.Errorf("discord: sending button message to channel %s: %w", channelID, err))
	}
	return nil
}

// SendDirectMessage delivers content to the user's DM channel,
// creating it on demand.
func (c *Client) SendDirectMessage(ctx context.Context, userID, content string) error {
	channel, err := c.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return classify(fmt.Errorf("discord: opening DM channel with user %s: %w", userID, err))
	}
	return c.SendMessage(ctx, channel.ID, content)
}

// DeleteMessage removes a message.
func (c *Client) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	if err := c.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx)); err != nil {
		return classify(fmt.Errorf("discord: deleting message %s in channel %s: %w", messageID, channelID, err))
	}
	return nil
}

// GrantRole adds a role to a guild member.
func (c *Client) GrantRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := c.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return classify(fmt.Errorf("discord: granting role %s to user %s: %w", roleID, userID, err))
	}
	return nil
}

// memberFromDiscord converts a discordgo member to the core's value
// type. A zero JoinedAt (Discord omits it for some lurker accounts)
// stays zero; the rank calculator substitutes the evaluation time.
func memberFromDiscord(member *discordgo.Member) bot.Member {
	converted := bot.Member{
		JoinedAt: member.JoinedAt,
		Roles:    member.Roles,
	}
	if member.User != nil {
		converted.ID = member.User.ID
		converted.Username = member.User.Username
		converted.Bot = member.User.Bot
	}
	return converted
}
