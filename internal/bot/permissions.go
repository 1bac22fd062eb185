package bot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/stewardbot/steward/internal/config"
)

// IsAdministrator reports whether a member has administrator privileges in
// their guild, or is the configured developer.
func IsAdministrator(s *discordgo.Session, member *discordgo.Member, cfg *config.Config) bool {
	if member == nil || member.User == nil {
		return false
	}
	if config.IsDeveloper(cfg, member.User.ID) {
		return true
	}

	guild, err := s.State.Guild(member.GuildID)
	if err != nil || guild == nil {
		guild, err = s.Guild(member.GuildID)
		if err != nil || guild == nil {
			return false
		}
	}

	if member.User.ID == guild.OwnerID {
		return true
	}
	for _, roleID := range member.Roles {
		if role, _ := s.State.Role(guild.ID, roleID); role != nil {
			if role.Permissions&discordgo.PermissionAdministrator != 0 {
				return true
			}
		}
	}
	return false
}

// BotHasPermission reports whether the bot itself holds a permission in a
// channel. Commands that delete or edit on the bot's behalf check this before
// touching the API.
func BotHasPermission(s *discordgo.Session, channelID string, permission int64) bool {
	perms, err := s.UserChannelPermissions(s.State.User.ID, channelID)
	if err != nil {
		return false
	}
	return perms&permission != 0
}

// ResolvePermissions returns the requester's permission bitset for an
// interaction. Interactions in guilds carry the member's computed permissions
// on the event; DMs have none.
func ResolvePermissions(i *discordgo.InteractionCreate) int64 {
	if i.Member != nil {
		return i.Member.Permissions
	}
	return 0
}

// ResolveMessagePermissions returns the author's permission bitset for a
// plain message, computed against the channel it was sent in.
func ResolveMessagePermissions(s *discordgo.Session, m *discordgo.MessageCreate) int64 {
	if m.GuildID == "" || m.Author == nil {
		return 0
	}
	perms, err := s.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		return 0
	}
	return perms
}
