// Package common holds constants and helpers shared by the bot's modules.
package common

import (
	"fmt"
	"unicode/utf8"

	"github.com/diamondburned/arikawa/v3/discord"
)

const (
	ColourQuote discord.Color = 0x00AE86
	ColourRed   discord.Color = 0xE74C3C
	ColourGreen discord.Color = 0x2ECC71
)

// MessageLink returns a link to the given message.
func MessageLink(guildID, channelID, messageID string) string {
	return fmt.Sprintf("https://discord.com/channels/%v/%v/%v", guildID, channelID, messageID)
}

// Truncate cuts s to at most n runes, adding "..." if anything was cut.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
