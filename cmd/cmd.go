package cmd

import (
	"os"

	"github.com/starshine-sys/quotebot/cmd/bot"
	"github.com/starshine-sys/quotebot/cmd/commands"
	"github.com/starshine-sys/quotebot/cmd/importquotes"
	"github.com/starshine-sys/quotebot/cmd/migrate"
	"github.com/starshine-sys/quotebot/common"
	"github.com/urfave/cli/v2"
)

var app = &cli.App{
	Name:    "Quotebot",
	Usage:   "Discord quote bot",
	Version: common.Version(),

	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the configuration file",
			EnvVars: []string{"QUOTEBOT_CONFIG"},
			Value:   "config.toml",
		},
	},

	Commands: []*cli.Command{
		bot.Command,
		migrate.Command,
		commands.Command,
		importquotes.Command,
	},
}

func Run() error {
	return app.Run(os.Args)
}
