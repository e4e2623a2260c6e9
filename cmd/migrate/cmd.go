package migrate

import (
	"github.com/starshine-sys/quotebot/bot"
	"github.com/starshine-sys/quotebot/common/log"
	"github.com/starshine-sys/quotebot/db"
	"github.com/urfave/cli/v2"
)

var Command = &cli.Command{
	Name:   "migrate",
	Usage:  "Run database migrations manually",
	Action: run,
	Flags: []cli.Flag{&cli.BoolFlag{
		Name:    "force",
		Aliases: []string{"f"},
		Usage:   "Run migrations whether or not no_auto_migrate is set in the config.",
		Value:   false,
	}},
}

func run(c *cli.Context) error {
	conf, err := bot.ReadConfig(c.String("config"))
	if err != nil {
		log.Fatalf("Reading configuration: %v", err)
	}

	if conf.Auth.Postgres == "" {
		return cli.Exit("No database url set in the config file or DATABASE_URL.", 1)
	}

	if !conf.Bot.NoAutoMigrate && !c.Bool("force") {
		return cli.Exit("Migrations are run automatically when the bot starts, and the --force flag is not set.", 1)
	}

	err = db.RunMigrations(conf.Auth.Postgres)
	if err != nil {
		log.Fatalf("Running migrations: %v", err)
	}

	log.Info("Successfully ran migrations!")
	return nil
}
