package bot

import (
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/starshine-sys/quotebot/common"
	"github.com/starshine-sys/quotebot/common/log"
)

// ReportError logs an unexpected error, sends it to Sentry if it's configured, and returns an ephemeral error response.
func (bot *Bot) ReportError(ev *discord.InteractionEvent, err error) *api.InteractionResponseData {
	log.Errorf("handling interaction %v: %v", ev.ID, err)

	embed := discord.Embed{
		Title:       "Internal error occurred",
		Description: "There was an error while executing this command!",
		Color:       common.ColourRed,
		Timestamp:   discord.NowTimestamp(),
	}
	if bot.Config.Info.SupportServer != "" {
		embed.Description += fmt.Sprintf(" If this issue persists, please ask for help in the [support server](%v).", bot.Config.Info.SupportServer)
	}

	if bot.Config.Auth.Sentry == "" {
		return &api.InteractionResponseData{
			Embeds: &[]discord.Embed{embed},
			Flags:  discord.EphemeralMessage,
		}
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		if id := ev.SenderID(); id.IsValid() {
			scope.SetUser(sentry.User{ID: id.String()})
		}
		if ev.GuildID.IsValid() {
			scope.SetTag("guild", ev.GuildID.String())
		}
	})

	hub.AddBreadcrumb(&sentry.Breadcrumb{
		Data: map[string]any{
			"user":        ev.SenderID(),
			"interaction": ev.ID,
		},
		Level:     sentry.LevelError,
		Timestamp: time.Now().UTC(),
	}, nil)

	id := hub.CaptureException(err)
	if id == nil {
		uid := uuid.New().String()
		id = (*sentry.EventID)(&uid)
	}

	embed.Footer = &discord.EmbedFooter{Text: string(*id)}
	return &api.InteractionResponseData{
		Content: option.NewNullableString(fmt.Sprintf("Error code: ``%v``", string(*id))),
		Embeds:  &[]discord.Embed{embed},
		Flags:   discord.EphemeralMessage,
	}
}
