package common

import (
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
)

// QuoteMessageCommand is the name of the message context menu command.
const QuoteMessageCommand = "Quote This Message"

var Commands = []api.CreateCommandData{
	{
		Name:        "quote",
		Description: "Manages quotes for the server.",
		Options: discord.CommandOptions{
			&discord.SubcommandOption{
				OptionName:  "add",
				Description: "Adds a quote. For existing messages, right-click message -> Apps -> \"Quote This Message\".",
				Options: []discord.CommandOptionValue{
					&discord.UserOption{
						OptionName:  "user",
						Description: "The user who said the quote (for manual entry).",
						Required:    true,
					},
					&discord.StringOption{
						OptionName:  "text",
						Description: "The quote text (for manual entry).",
						Required:    true,
					},
				},
			},
			&discord.SubcommandOption{
				OptionName:  "get",
				Description: "Gets a quote.",
				Options: []discord.CommandOptionValue{
					&discord.StringOption{
						OptionName:  "query",
						Description: "Quote ID or part of the quoter's name/ID (optional, for random).",
					},
				},
			},
			&discord.SubcommandOption{
				OptionName:  "list",
				Description: "Lists quotes.",
				Options: []discord.CommandOptionValue{
					&discord.UserOption{
						OptionName:  "user",
						Description: "Filter quotes by this user (optional).",
					},
				},
			},
			&discord.SubcommandOption{
				OptionName:  "delete",
				Description: "Deletes a quote by its ID.",
				Options: []discord.CommandOptionValue{
					&discord.IntegerOption{
						OptionName:  "id",
						Description: "The ID of the quote to delete.",
						Required:    true,
					},
				},
			},
			&discord.SubcommandOption{
				OptionName:  "help",
				Description: "Shows help information for quote commands.",
			},
		},
	},
	{
		Name: QuoteMessageCommand,
		Type: discord.MessageCommand,
	},
}
