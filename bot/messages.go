// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

package bot

import (
	"fmt"
	"strings"
)

// All user-facing text lives here. The wording is not contractual;
// handlers depend only on which message is chosen, and the tests
// assert on the user and channel mention markers, not prose.

// mention formats a user mention.
func mention(userID string) string { return "<@" + userID + ">" }

// channelMention formats a channel mention.
func channelMention(channelID string) string { return "<#" + channelID + ">" }

func welcomeMessage(userID string, rank int) string {
	if rank <= 0 {
		return fmt.Sprintf("Hello %s!\nWelcome to the team! ✨", mention(userID))
	}
	return fmt.Sprintf("Hello %s!\nWelcome to the team! ✨\nYou are member number **%d**. 🎉", mention(userID), rank)
}

func checkMessage(rank int) string {
	if rank <= 0 {
		return "I could not work out your member number right now — try again in a moment."
	}
	return fmt.Sprintf("You are member number **%d** of the team! ✨", rank)
}

// Rules message and acceptance replies.

const rulesMessage = "Please read the server rules, then press the button below to unlock the rest of the server."

const rulesButtonLabel = "I accept the rules"

const rulesNoGuildReply = "This button only works inside a server. Try again from the rules channel."

const rulesNotConfiguredReply = "Rule acceptance is not configured on this server yet — ask an administrator to set the member role."

const rulesStaleRoleReply = "The configured member role no longer exists — ask an administrator to set it again."

const rulesAlreadyGrantedReply = "You have already accepted the rules. Nothing to do. ✅"

const rulesPermissionReply = "I am not allowed to grant the member role — ask an administrator to move my role above it."

const rulesTransientReply = "Something went wrong granting the role. Please try again."

const rulesGrantedReply = "Welcome aboard! You now have access to the rest of the server. ✅"

func auditAcceptedMessage(actor Member) string {
	return fmt.Sprintf("📋 %s (%s) accepted the rules.", actor.Username, actor.ID)
}

// Relocation notice.

// previewLimit caps the quoted content of a relocated message.
const previewLimit = 1500

func relocationNotice(originChannelID string, author Member, preview string, attachments []Attachment) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🚚 Relocated a message from bot **%s** (%s) posted in %s.",
		author.Username, author.ID, channelMention(originChannelID))
	if preview != "" {
		fmt.Fprintf(&sb, "\n>>> %s", preview)
	}
	for _, attachment := range attachments {
		fmt.Fprintf(&sb, "\n📎 %s", attachment.URL)
	}
	return sb.String()
}

// Birthday replies.

const birthdayFormatReply = "I did not understand that date. Use day/month (25/10, 25-10, 25.10) or day-month (25-Oct), then try again."

const birthdayRoleGateReply = "Birthday registration is reserved for members who accepted the rules."

const birthdayNotSetReply = "You have no birthday registered. Use /birthday set to add one."

const birthdayRemovedReply = "Your birthday has been removed. 🗑️"

const birthdayNothingToRemoveReply = "You had no birthday registered — nothing removed."

const birthdayTransientReply = "I could not save that right now. Please try again."

func birthdaySetReply(day, month int) string {
	return fmt.Sprintf("Registered! I will celebrate you on **%02d/%02d**. 🎂", day, month)
}

func birthdayQueryReply(day, month int) string {
	return fmt.Sprintf("Your registered birthday is **%02d/%02d**. 🎂", day, month)
}

func announcementMessage(userIDs []string) string {
	mentions := make([]string, len(userIDs))
	for i, userID := range userIDs {
		mentions[i] = mention(userID)
	}
	return fmt.Sprintf("🎂 Happy birthday %s! Have a wonderful day! 🎉", strings.Join(mentions, ", "))
}

// Administrative acknowledgments.

func referenceSetReply(what, mentionText string) string {
	return fmt.Sprintf("Done — %s is now %s.", what, mentionText)
}

const adminGuildOnlyReply = "This command only works inside a server."

const unknownCommandReply = "I do not recognize that command — it may come from an older version of me."
