// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/dreamteam-hq/concierge/bot"
)

// Slash command names. The dispatch switch and the registration data
// share these so they cannot drift apart.
const (
	cmdCheck              = "check"
	cmdBirthday           = "birthday"
	cmdPostRules          = "post-rules"
	cmdSetWelcomeChannel  = "set-welcome-channel"
	cmdSetRulesRole       = "set-rules-role"
	cmdSetStaffLogChannel = "set-staff-log-channel"
	cmdSetBirthdayChannel = "set-birthday-channel"
	cmdSetSpamChannel     = "set-spam-channel"
)

// commandDefinitions declares the full command surface as data.
// Administrator gating on the set-* and post-rules commands uses
// Discord's own default-permission mechanism rather than handler-side
// checks.
func commandDefinitions() []*discordgo.ApplicationCommand {
	adminOnly := int64(discordgo.PermissionAdministrator)
	noDM := false

	textChannelOption := func(description string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "channel",
			Description:  description,
			Required:     true,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
		}
	}

	adminChannelCommand := func(name, description, optionDescription string) *discordgo.ApplicationCommand {
		return &discordgo.ApplicationCommand{
			Name:                     name,
			Description:              description,
			DefaultMemberPermissions: &adminOnly,
			DMPermission:             &noDM,
			Options:                  []*discordgo.ApplicationCommandOption{textChannelOption(optionDescription)},
		}
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        cmdCheck,
			Description: "Show your member number in this server",
		},
		{
			Name:        cmdBirthday,
			Description: "Manage your birthday",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Register your birthday (day and month only)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "date",
							Description: "For example 25/10 or 25-Oct",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "me",
					Description: "Show your registered birthday",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove your registered birthday",
				},
			},
		},
		{
			Name:                     cmdPostRules,
			Description:              "Post the rules message with its acceptance button in this channel",
			DefaultMemberPermissions: &adminOnly,
			DMPermission:             &noDM,
		},
		adminChannelCommand(cmdSetWelcomeChannel, "Set the channel for welcome greetings", "Channel that receives greetings"),
		{
			Name:                     cmdSetRulesRole,
			Description:              "Set the role granted on rule acceptance",
			DefaultMemberPermissions: &adminOnly,
			DMPermission:             &noDM,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Role granted when a member accepts the rules",
					Required:    true,
				},
			},
		},
		adminChannelCommand(cmdSetStaffLogChannel, "Set the channel for staff audit notifications", "Channel that receives audit lines"),
		adminChannelCommand(cmdSetBirthdayChannel, "Set the channel for birthday announcements", "Channel that receives announcements"),
		adminChannelCommand(cmdSetSpamChannel, "Set the channel that collects relocated bot messages", "Channel that receives relocated messages"),
	}
}

// RegisterCommands overwrites the application's global command set.
// Call after Open (the application ID comes from the ready state).
func (c *Client) RegisterCommands(ctx context.Context) error {
	appID := c.BotUserID()
	if appID == "" {
		return fmt.Errorf("discord: cannot register commands before the session is open")
	}
	_, err := c.session.ApplicationCommandBulkOverwrite(appID, "", commandDefinitions(), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discord: registering commands: %w", err)
	}
	c.logger.Info("slash commands registered", "count", len(commandDefinitions()))
	return nil
}

// dispatchInteraction routes button presses and slash commands to the
// core handlers.
func (c *Client) dispatchInteraction(ctx context.Context, b *bot.Bot, event *discordgo.InteractionCreate) {
	coreEvent := bot.InteractionEvent{
		GuildID:   event.GuildID,
		ChannelID: event.ChannelID,
		Actor:     interactionActor(event),
		Reply:     &interactionReplier{session: c.session, interaction: event.Interaction},
	}

	switch event.Type {
	case discordgo.InteractionMessageComponent:
		if event.MessageComponentData().CustomID == bot.RulesAcceptID {
			b.HandleRulesAccept(ctx, coreEvent)
		}

	case discordgo.InteractionApplicationCommand:
		data := event.ApplicationCommandData()
		switch data.Name {
		case cmdCheck:
			b.HandleCheck(ctx, coreEvent)
		case cmdBirthday:
			c.dispatchBirthday(ctx, b, coreEvent, data)
		case cmdPostRules:
			b.HandlePostRules(ctx, coreEvent)
		case cmdSetWelcomeChannel:
			b.HandleSetWelcomeChannel(ctx, coreEvent, firstOptionID(data))
		case cmdSetRulesRole:
			b.HandleSetRulesRole(ctx, coreEvent, firstOptionID(data))
		case cmdSetStaffLogChannel:
			b.HandleSetStaffLogChannel(ctx, coreEvent, firstOptionID(data))
		case cmdSetBirthdayChannel:
			b.HandleSetBirthdayChannel(ctx, coreEvent, firstOptionID(data))
		case cmdSetSpamChannel:
			b.HandleSetSpamChannel(ctx, coreEvent, firstOptionID(data))
		default:
			b.HandleUnknownCommand(ctx, coreEvent)
		}
	}
}

// dispatchBirthday routes the /birthday subcommands.
func (c *Client) dispatchBirthday(ctx context.Context, b *bot.Bot, coreEvent bot.InteractionEvent, data discordgo.ApplicationCommandInteractionData) {
	if len(data.Options) == 0 {
		b.HandleUnknownCommand(ctx, coreEvent)
		return
	}
	sub := data.Options[0]
	switch sub.Name {
	case "set":
		date := ""
		if len(sub.Options) > 0 {
			date = sub.Options[0].StringValue()
		}
		b.HandleBirthdaySet(ctx, coreEvent, date)
	case "me":
		b.HandleBirthdayQuery(ctx, coreEvent)
	case "remove":
		b.HandleBirthdayRemove(ctx, coreEvent)
	default:
		b.HandleUnknownCommand(ctx, coreEvent)
	}
}

// firstOptionID reads the first option's value as an entity ID.
// Channel and role options carry the snowflake as a string.
func firstOptionID(data discordgo.ApplicationCommandInteractionData) string {
	if len(data.Options) == 0 {
		return ""
	}
	id, _ := data.Options[0].Value.(string)
	return id
}
