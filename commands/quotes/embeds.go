package quotes

import (
	"fmt"
	"strconv"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/dustin/go-humanize"
	"github.com/starshine-sys/quotebot/common"
	"github.com/starshine-sys/quotebot/store"
)

// maxListFields is the maximum number of fields in an embed.
const maxListFields = 25

// maxListText is how much of a quote's text is shown in the list.
const maxListText = 100

// addedEmbed is the response to a newly added quote.
func addedEmbed(title string, q store.Quote, adder discord.User, avatar string) discord.Embed {
	e := discord.Embed{
		Title:       title,
		Description: fmt.Sprintf("\"%s\"", q.Text),
		Color:       common.ColourQuote,
		Fields: []discord.EmbedField{
			{Name: "Quoted", Value: q.QuoterName, Inline: true},
			{Name: "Added by", Value: adder.Mention(), Inline: true},
		},
		Footer:    &discord.EmbedFooter{Text: "Quote ID: " + strconv.FormatInt(q.ID, 10)},
		Timestamp: discord.NewTimestamp(q.Timestamp),
	}

	if q.HasMessageLink() {
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:  "Original Message",
			Value: fmt.Sprintf("[Jump to Message](%s)", common.MessageLink(q.GuildID, *q.ChannelID, *q.OriginalMessageID)),
		})
	}

	if avatar != "" {
		e.Thumbnail = &discord.EmbedThumbnail{URL: avatar}
	}
	return e
}

// quoteEmbed shows a single quote.
func quoteEmbed(q store.Quote, avatar string) discord.Embed {
	e := discord.Embed{
		Author: &discord.EmbedAuthor{
			Name: q.QuoterName,
			Icon: avatar,
		},
		Description: "> " + q.Text,
		Color:       common.ColourQuote,
		Footer: &discord.EmbedFooter{
			Text: fmt.Sprintf("Quote ID: %d | Added by: %s", q.ID, q.AdderTag),
		},
		Timestamp: discord.NewTimestamp(q.Timestamp),
	}

	switch {
	case q.HasMessageLink():
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:  "Original Message",
			Value: fmt.Sprintf("[Jump to Message](%s)", common.MessageLink(q.GuildID, *q.ChannelID, *q.OriginalMessageID)),
		})
	case q.OriginalMessageID != nil && *q.OriginalMessageID != "":
		// older quotes don't have a channel ID, so they can't be linked to
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:  "Original Message Context",
			Value: fmt.Sprintf("From an earlier message (ID: %s)", *q.OriginalMessageID),
		})
	}
	return e
}

// listEmbed lists up to 25 quotes.
func listEmbed(title string, quotes []store.Quote, now time.Time) discord.Embed {
	e := discord.Embed{
		Title: title,
		Color: common.ColourQuote,
	}

	for i, q := range quotes {
		if i >= maxListFields {
			break
		}

		e.Fields = append(e.Fields, discord.EmbedField{
			Name: fmt.Sprintf("ID: %d - By: %s", q.ID, q.QuoterName),
			Value: fmt.Sprintf("\"%s\"\n*added %s*",
				common.Truncate(q.Text, maxListText),
				humanize.RelTime(q.Timestamp, now, "ago", "from now")),
		})
	}

	if len(quotes) > maxListFields {
		e.Footer = &discord.EmbedFooter{
			Text: fmt.Sprintf("Showing %d of %d quotes.", len(e.Fields), len(quotes)),
		}
	}
	return e
}

func helpEmbed(supportServer string) discord.Embed {
	e := discord.Embed{
		Title:       "Quote Bot Help",
		Description: "Here's how to use the quote commands:",
		Color:       common.ColourQuote,
		Fields: []discord.EmbedField{
			{
				Name:  "`Right-Click Message -> Apps -> " + common.QuoteMessageCommand + "`",
				Value: "The easiest way to quote an existing message.",
			},
			{
				Name:  "`/quote add user:<user> text:<\"quote text\">`",
				Value: "Manually add a new quote.",
			},
			{
				Name:  "`/quote get [query]`",
				Value: "Shows a quote. Provide an ID or quoter name/ID to search. If empty, shows a random quote.",
			},
			{
				Name:  "`/quote list [user]`",
				Value: "Lists quotes. Optionally filter by a specific user.",
			},
			{
				Name:  "`/quote delete id:<ID>`",
				Value: "Deletes a quote by its ID. (Requires being the adder or Admin).",
			},
		},
		Footer: &discord.EmbedFooter{Text: "Enjoy quoting!"},
	}

	if supportServer != "" {
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:  "Support server",
			Value: "Use this link to join the support server: " + supportServer,
		})
	}
	return e
}
