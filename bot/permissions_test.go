package bot

import (
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
)

func TestIsAdmin(t *testing.T) {
	const guildID discord.GuildID = 100
	const ownerID discord.UserID = 1

	roles := []discord.Role{
		{ID: discord.RoleID(guildID), Permissions: discord.PermissionSendMessages},
		{ID: 200, Permissions: discord.PermissionManageMessages},
		{ID: 300, Permissions: discord.PermissionAdministrator},
	}

	member := func(id discord.UserID, roles ...discord.RoleID) *discord.Member {
		return &discord.Member{User: discord.User{ID: id}, RoleIDs: roles}
	}

	assert.True(t, isAdmin(guildID, ownerID, roles, member(ownerID)), "owner")
	assert.True(t, isAdmin(guildID, ownerID, roles, member(2, 200, 300)), "administrator role")
	assert.False(t, isAdmin(guildID, ownerID, roles, member(2, 200)), "moderator role")
	assert.False(t, isAdmin(guildID, ownerID, roles, member(2)), "no roles")

	// if @everyone has administrator, everyone is an admin
	everyoneAdmin := []discord.Role{{ID: discord.RoleID(guildID), Permissions: discord.PermissionAdministrator}}
	assert.True(t, isAdmin(guildID, ownerID, everyoneAdmin, member(2)))
}
