// Package demo is a small demo of message components: it DMs message authors a button to press.
package demo

import (
	"context"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/utils/httputil"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/starshine-sys/quotebot/bot"
	"github.com/starshine-sys/quotebot/common/log"
)

// ButtonID is the custom ID of the demo button.
const ButtonID = "test"

// errCannotDM is Discord's "Cannot send messages to this user" error code.
const errCannotDM httputil.ErrorCode = 50007

const dmsClosed = "I tried to send you a DM, but it seems your DMs are closed. Please enable DMs from server members to use this feature."

type Bot struct {
	*bot.Bot
}

func Setup(root *bot.Bot) {
	if !root.Config.Bot.DMDemo {
		return
	}

	log.Debug("Adding DM demo")

	bot := &Bot{Bot: root}

	bot.AddHandler(bot.messageCreate)
	bot.Router.AddComponentFunc(ButtonID, bot.button)
}

func (bot *Bot) messageCreate(ev *gateway.MessageCreateEvent) {
	if ev.Author.Bot {
		return
	}

	err := bot.sendButton(ev.Author.ID)
	if err == nil {
		return
	}

	if !isDMsClosed(err) {
		log.Errorf("sending demo DM to %v: %v", ev.Author.ID, err)
		return
	}

	_, err = bot.SendMessageComplex(ev.ChannelID, api.SendMessageData{
		Content:   dmsClosed,
		Reference: &discord.MessageReference{MessageID: ev.ID},
		AllowedMentions: &api.AllowedMentions{
			Parse: []api.AllowedMentionType{},
		},
	})
	if err != nil {
		log.Errorf("telling %v their DMs are closed: %v", ev.Author.ID, err)
	}
}

func (bot *Bot) sendButton(userID discord.UserID) error {
	ch, err := bot.CreatePrivateChannel(userID)
	if err != nil {
		return errors.Wrap(err, "creating DM channel")
	}

	_, err = bot.SendMessageComplex(ch.ID, buttonMessage())
	if err != nil {
		return errors.Wrap(err, "sending message")
	}
	return nil
}

func buttonMessage() api.SendMessageData {
	return api.SendMessageData{
		Content: "Push my btns!",
		Components: discord.Components(
			&discord.ActionRowComponent{
				&discord.ButtonComponent{
					Label:    "Do you want to test this?",
					CustomID: ButtonID,
					Style:    discord.PrimaryButtonStyle(),
				},
			},
		),
	}
}

func isDMsClosed(err error) bool {
	var herr *httputil.HTTPError
	if errors.As(err, &herr) {
		return herr.Code == errCannotDM
	}
	return false
}

func (bot *Bot) button(ctx context.Context, data cmdroute.ComponentData) *api.InteractionResponse {
	return &api.InteractionResponse{
		Type: api.MessageInteractionWithSource,
		Data: &api.InteractionResponseData{
			Content: option.NewNullableString("You tested my button bruh!!!!!"),
		},
	}
}
