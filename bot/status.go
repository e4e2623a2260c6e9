package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/starshine-sys/quotebot/common/log"
)

const statusInterval = 5 * time.Minute

// statusLoop updates the bot's status every few minutes until ctx is cancelled.
func (bot *Bot) statusLoop(ctx context.Context) {
	// give the gateway some time to receive guilds
	select {
	case <-ctx.Done():
		return
	case <-time.After(5 * time.Second):
	}

	t := time.NewTicker(statusInterval)
	defer t.Stop()

	for {
		bot.updateStatus(ctx)

		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func (bot *Bot) updateStatus(ctx context.Context) {
	count := -1
	if guilds, err := bot.Cabinet.Guilds(); err == nil {
		count = len(guilds)
	}

	err := bot.SendGateway(ctx, &gateway.UpdatePresenceCommand{
		Status: discord.OnlineStatus,
		Activities: []discord.Activity{{
			Name: statusText(count),
			Type: discord.GameActivity,
		}},
	})
	if err != nil {
		log.Errorf("updating status: %v", err)
	}
}

// statusText returns the status shown on the bot's profile. count is negative if the guild count is unknown.
func statusText(count int) string {
	status := "/quote help"
	if count >= 0 {
		status += fmt.Sprintf(" | in %d servers", count)
	}
	return status
}
