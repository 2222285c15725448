// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/dreamteam-hq/concierge/bot"
)

// Bind registers the gateway handlers that translate discordgo events
// into the core's event structs. Call before Open so no event is
// missed. ctx bounds handler I/O and outlives individual events; it is
// the process context, not a per-event deadline.
func (c *Client) Bind(ctx context.Context, b *bot.Bot) {
	c.session.AddHandler(func(_ *discordgo.Session, event *discordgo.GuildMemberAdd) {
		b.HandleMemberJoin(ctx, bot.MemberJoinEvent{
			GuildID: event.GuildID,
			Member:  memberFromDiscord(event.Member),
		})
	})

	c.session.AddHandler(func(_ *discordgo.Session, event *discordgo.MessageCreate) {
		if event.Author == nil {
			return
		}
		attachments := make([]bot.Attachment, 0, len(event.Attachments))
		for _, attachment := range event.Attachments {
			attachments = append(attachments, bot.Attachment{
				URL:      attachment.URL,
				Filename: attachment.Filename,
			})
		}
		b.HandleMessage(ctx, bot.MessageEvent{
			GuildID:     event.GuildID,
			ChannelID:   event.ChannelID,
			MessageID:   event.ID,
			Author:      bot.Member{ID: event.Author.ID, Username: event.Author.Username, Bot: event.Author.Bot},
			Content:     event.Content,
			Attachments: attachments,
		})
	})

	c.session.AddHandler(func(_ *discordgo.Session, event *discordgo.InteractionCreate) {
		c.dispatchInteraction(ctx, b, event)
	})
}

// interactionActor extracts the invoking member. Member is set for
// guild interactions (and carries the current role set); User for DMs.
func interactionActor(event *discordgo.InteractionCreate) bot.Member {
	if event.Member != nil && event.Member.User != nil {
		return bot.Member{
			ID:       event.Member.User.ID,
			Username: event.Member.User.Username,
			Bot:      event.Member.User.Bot,
			Roles:    event.Member.Roles,
		}
	}
	if event.User != nil {
		return bot.Member{ID: event.User.ID, Username: event.User.Username, Bot: event.User.Bot}
	}
	return bot.Member{}
}

// interactionReplier answers an interaction with an initial response.
type interactionReplier struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
}

func (r *interactionReplier) Reply(ctx context.Context, content string, ephemeral bool) error {
	response := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	}
	if ephemeral {
		response.Data.Flags = discordgo.MessageFlagsEphemeral
	}
	return classify(r.session.InteractionRespond(r.interaction, response, discordgo.WithContext(ctx)))
}
