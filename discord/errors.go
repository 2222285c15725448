// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

package discord

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/dreamteam-hq/concierge/bot"
)

// classify wraps Discord REST failures with the core's sentinel
// errors. The JSON error code is authoritative; the HTTP status is the
// fallback for responses without one. Errors that are neither
// permission refusals nor dead references pass through unchanged as
// transport errors.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var rest *discordgo.RESTError
	if !errors.As(err, &rest) {
		return err
	}

	if rest.Message != nil {
		switch rest.Message.Code {
		case discordgo.ErrCodeMissingAccess,
			discordgo.ErrCodeMissingPermissions,
			discordgo.ErrCodeCannotSendMessagesToThisUser:
			return fmt.Errorf("%w: %v", bot.ErrPermission, err)
		case discordgo.ErrCodeUnknownChannel,
			discordgo.ErrCodeUnknownGuild,
			discordgo.ErrCodeUnknownMember,
			discordgo.ErrCodeUnknownMessage,
			discordgo.ErrCodeUnknownRole,
			discordgo.ErrCodeUnknownUser:
			return fmt.Errorf("%w: %v", bot.ErrNotFound, err)
		}
	}

	if rest.Response != nil {
		switch rest.Response.StatusCode {
		case http.StatusForbidden:
			return fmt.Errorf("%w: %v", bot.ErrPermission, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", bot.ErrNotFound, err)
		}
	}

	return err
}
