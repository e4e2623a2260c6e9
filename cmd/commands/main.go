package commands

import (
	"context"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/quotebot/common"
	"github.com/starshine-sys/quotebot/common/log"
	"github.com/urfave/cli/v2"
)

var Command = &cli.Command{
	Name:   "commands",
	Usage:  "Synchronize slash commands",
	Action: run,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "token",
			Usage:    "The bot's token",
			EnvVars:  []string{"DISCORD_TOKEN", "TOKEN"},
			Required: true,
		},
		&cli.Uint64Flag{
			Name:    "app-id",
			Usage:   "The bot's application ID. Fetched from Discord if not set",
			EnvVars: []string{"APP_ID"},
		},
		&cli.BoolFlag{
			Name:  "global",
			Usage: "Synchronize slash commands globally (mutually exclusive with --guild)",
		},
		&cli.Uint64Flag{
			Name:  "guild",
			Usage: "Synchronize slash commands to a specific guild",
		},
	},
}

func run(c *cli.Context) error {
	global := c.Bool("global")
	guildID := discord.GuildID(c.Uint64("guild"))
	if global && guildID.IsValid() {
		return cli.Exit("`global` and `guild` are mutually exclusive", 1)
	}
	if !global && !guildID.IsValid() {
		return cli.Exit("Neither `global` nor `guild` were set", 1)
	}

	client := api.NewClient("Bot " + c.String("token")).WithContext(c.Context)

	appID, err := applicationID(c.Context, client, c.Uint64("app-id"))
	if err != nil {
		return err
	}

	if global {
		_, err = client.BulkOverwriteCommands(appID, common.Commands)
		if err != nil {
			return errors.Wrap(err, "overwriting global commands")
		}

		log.Infof("Wrote %d global commands!", len(common.Commands))
		return nil
	}

	_, err = client.BulkOverwriteGuildCommands(appID, guildID, common.Commands)
	if err != nil {
		return errors.Wrapf(err, "overwriting commands in %v", guildID)
	}

	log.Infof("Wrote %d guild commands in %v!", len(common.Commands), guildID)
	return nil
}

func applicationID(ctx context.Context, client *api.Client, id uint64) (discord.AppID, error) {
	if id != 0 {
		return discord.AppID(id), nil
	}

	app, err := client.WithContext(ctx).CurrentApplication()
	if err != nil {
		return 0, errors.Wrap(err, "getting current application")
	}
	return app.ID, nil
}
