// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

package discord

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/dreamteam-hq/concierge/bot"
)

func restError(code int, status int) *discordgo.RESTError {
	err := &discordgo.RESTError{}
	if code != 0 {
		err.Message = &discordgo.APIErrorMessage{Code: code, Message: "synthetic"}
	}
	if status != 0 {
		err.Response = &http.Response{StatusCode: status}
	}
	return err
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil passes through", nil, nil},
		{"missing access is permission", restError(discordgo.ErrCodeMissingAccess, 0), bot.ErrPermission},
		{"missing permissions is permission", restError(discordgo.ErrCodeMissingPermissions, 0), bot.ErrPermission},
		{"closed DMs is permission", restError(discordgo.ErrCodeCannotSendMessagesToThisUser, 0), bot.ErrPermission},
		{"unknown channel is not found", restError(discordgo.ErrCodeUnknownChannel, 0), bot.ErrNotFound},
		{"unknown role is not found", restError(discordgo.ErrCodeUnknownRole, 0), bot.ErrNotFound},
		{"unknown member is not found", restError(discordgo.ErrCodeUnknownMember, 0), bot.ErrNotFound},
		{"json code wins over status", restError(discordgo.ErrCodeUnknownMessage, http.StatusForbidden), bot.ErrNotFound},
		{"bare 403 is permission", restError(0, http.StatusForbidden), bot.ErrPermission},
		{"bare 404 is not found", restError(0, http.StatusNotFound), bot.ErrNotFound},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := classify(test.err)
			if test.want == nil {
				if got != nil {
					t.Fatalf("classify returned %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, test.want) {
				t.Fatalf("classify returned %v, want a wrap of %v", got, test.want)
			}
		})
	}
}

func TestClassifyLeavesTransportErrorsAlone(t *testing.T) {
	transport := fmt.Errorf("gateway timeout")
	got := classify(transport)
	if got != transport {
		t.Fatalf("classify rewrote a non-REST error: %v", got)
	}
	if errors.Is(got, bot.ErrPermission) || errors.Is(got, bot.ErrNotFound) {
		t.Fatal("transport error must not match a sentinel")
	}

	server := restError(0, http.StatusInternalServerError)
	if errors.Is(classify(server), bot.ErrPermission) || errors.Is(classify(server), bot.ErrNotFound) {
		t.Fatal("server error must stay a transport error")
	}
}

func TestClassifyKeepsOriginalInChain(t *testing.T) {
	original := restError(discordgo.ErrCodeMissingPermissions, 0)
	got := classify(original)
	if !errors.Is(got, bot.ErrPermission) {
		t.Fatalf("classify returned %v, want a permission error", got)
	}
	if got == nil || got.Error() == bot.ErrPermission.Error() {
		t.Fatal("classified error must keep the Discord detail")
	}
}
