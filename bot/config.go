package bot

import (
	"os"
	"time"

	"emperror.dev/errors"
	"github.com/BurntSushi/toml"
	"github.com/diamondburned/arikawa/v3/discord"
)

type Config struct {
	Auth    AuthConfig    `toml:"auth"`
	Bot     BotConfig     `toml:"bot"`
	Storage StorageConfig `toml:"storage"`
	Web     WebConfig     `toml:"web"`
	Info    InfoConfig    `toml:"info"`
}

type AuthConfig struct {
	Discord  string `toml:"discord"`
	Postgres string `toml:"postgres"`
	Redis    string `toml:"redis"`
	Sentry   string `toml:"sentry"`
}

type BotConfig struct {
	Owner           discord.UserID  `toml:"owner"`
	CommandsGuildID discord.GuildID `toml:"commands_guild_id"`
	NoSyncCommands  bool            `toml:"no_sync_commands"`
	// Guild join/leave logs
	JoinLeaveLog discord.ChannelID `toml:"join_leave_log"`

	// TestMode stores quotes in memory only and doesn't post join/leave logs.
	TestMode bool `toml:"test_mode"`

	// NoAutoMigrate specifies if migrations should be done automatically when the bot starts.
	// If this is set to true, migrations must be done manually by running the `./quotebot migrate` command.
	NoAutoMigrate bool `toml:"no_auto_migrate"`

	// DMDemo enables the DM button demo, which DMs everyone who sends a message.
	DMDemo bool `toml:"dm_demo"`

	Debug bool `toml:"debug"`
}

// Storage backends
const (
	BackendJSON     = "json"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

type StorageConfig struct {
	// Backend is one of "json", "postgres", "redis", or "memory". Defaults to "json".
	Backend string `toml:"backend"`
	// Path is the quote file for the json backend.
	Path string `toml:"path"`
	// RedisKey is the key quotes are stored under for the redis backend.
	RedisKey string `toml:"redis_key"`
	// TimeoutSeconds bounds every storage call.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

func (c StorageConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type WebConfig struct {
	// Port for the HTTP API. The API is disabled if this is empty.
	Port string `toml:"port"`
}

type InfoConfig struct {
	SupportServer string `toml:"support_server"`
}

// ShouldLog returns true if test mode is not enabled.
func (c Config) ShouldLog() bool {
	return !c.Bot.TestMode
}

// ReadConfig reads the configuration file at path.
// A missing file is not an error, as long as the bot token is set in the environment.
func ReadConfig(path string) (c Config, err error) {
	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, errors.Wrap(err, "read config file")
	}

	if err == nil {
		err = toml.Unmarshal(b, &c)
		if err != nil {
			return c, errors.Wrap(err, "unmarshal config")
		}
	}

	c.fromEnv()

	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendJSON
	}

	if c.Auth.Discord == "" {
		return c, errors.New("no Discord token set in config file or environment")
	}
	return c, nil
}

// fromEnv fills in any unset values from environment variables.
func (c *Config) fromEnv() {
	setIfEmpty(&c.Auth.Discord, "DISCORD_TOKEN", "TOKEN")
	setIfEmpty(&c.Auth.Postgres, "DATABASE_URL")
	setIfEmpty(&c.Auth.Redis, "REDIS")
	setIfEmpty(&c.Auth.Sentry, "SENTRY_URL")
	setIfEmpty(&c.Storage.Backend, "STORAGE_BACKEND")
	setIfEmpty(&c.Storage.Path, "QUOTES_FILE")
	setIfEmpty(&c.Web.Port, "PORT")

	if !c.Bot.CommandsGuildID.IsValid() {
		sf, err := discord.ParseSnowflake(os.Getenv("GUILD_ID"))
		if err == nil {
			c.Bot.CommandsGuildID = discord.GuildID(sf)
		}
	}
}

func setIfEmpty(v *string, keys ...string) {
	if *v != "" {
		return
	}
	for _, k := range keys {
		if s := os.Getenv(k); s != "" {
			*v = s
			return
		}
	}
}
