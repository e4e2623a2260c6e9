package bot

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
)

// IsAdmin returns true if the member owns the guild or has a role with the Administrator permission.
func (bot *Bot) IsAdmin(guildID discord.GuildID, m *discord.Member) (bool, error) {
	if m == nil {
		return false, nil
	}

	g, err := bot.Guild(guildID)
	if err != nil {
		return false, errors.Wrap(err, "getting guild")
	}

	roles, err := bot.Roles(guildID)
	if err != nil {
		return false, errors.Wrap(err, "getting roles")
	}

	return isAdmin(guildID, g.OwnerID, roles, m), nil
}

func isAdmin(guildID discord.GuildID, ownerID discord.UserID, roles []discord.Role, m *discord.Member) bool {
	if m.User.ID == ownerID {
		return true
	}

	for _, r := range roles {
		// the @everyone role has the same ID as the guild, and isn't in the member's role list
		if !hasRole(m, r.ID) && discord.Snowflake(r.ID) != discord.Snowflake(guildID) {
			continue
		}
		if r.Permissions.Has(discord.PermissionAdministrator) {
			return true
		}
	}
	return false
}

func hasRole(m *discord.Member, id discord.RoleID) bool {
	for _, r := range m.RoleIDs {
		if r == id {
			return true
		}
	}
	return false
}
