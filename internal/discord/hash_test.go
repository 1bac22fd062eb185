package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func warnDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "warn",
		Description: "Record a warning for a member",
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Member to warn", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "reason", Description: "What they did", Required: true},
		},
	}
}

func TestHashCommandStableUnderOptionOrder(t *testing.T) {
	a := warnDefinition()
	b := warnDefinition()
	b.Options[0], b.Options[1] = b.Options[1], b.Options[0]

	if hashCommand(a) != hashCommand(b) {
		t.Error("hash should not depend on option declaration order")
	}
}

func TestHashCommandSensitivity(t *testing.T) {
	base := hashCommand(warnDefinition())

	changedDesc := warnDefinition()
	changedDesc.Description = "Something else"
	if hashCommand(changedDesc) == base {
		t.Error("hash should change with the description")
	}

	changedOption := warnDefinition()
	changedOption.Options[1].Required = false
	if hashCommand(changedOption) == base {
		t.Error("hash should change when an option changes")
	}

	changedType := warnDefinition()
	changedType.Type = discordgo.MessageApplicationCommand
	if hashCommand(changedType) == base {
		t.Error("hash should change with the command type")
	}
}

func TestHashCommandNestedOptions(t *testing.T) {
	sub := func(modules ...string) *discordgo.ApplicationCommand {
		choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(modules))
		for _, m := range modules {
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: m, Value: m})
		}
		return &discordgo.ApplicationCommand{
			Name: "modules",
			Type: discordgo.ChatApplicationCommand,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type: discordgo.ApplicationCommandOptionSubCommand,
					Name: "enable",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "module", Required: true, Choices: choices},
					},
				},
			},
		}
	}

	if hashCommand(sub("core", "gameplay")) == hashCommand(sub("core", "moderation")) {
		t.Error("hash should reach into nested option choices")
	}
	if hashCommand(sub("core", "gameplay")) != hashCommand(sub("core", "gameplay")) {
		t.Error("hash should be deterministic")
	}
}
