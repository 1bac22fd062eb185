package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"

	"github.com/stewardbot/steward/internal/bot"
	"github.com/stewardbot/steward/internal/command"
	"github.com/stewardbot/steward/internal/middleware"
	"github.com/stewardbot/steward/internal/module"
	"github.com/stewardbot/steward/internal/version"
)

const aboutBannerPath = "./assets/about-banner.webp"

type AboutCommand struct{}

func (c *AboutCommand) Name() string             { return "about" }
func (c *AboutCommand) Description() string      { return "Show what this bot is and how it is built" }
func (c *AboutCommand) Module() module.ID        { return module.Core }
func (c *AboutCommand) UserPermissions() []int64 { return []int64{} }

func (c *AboutCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *AboutCommand) Run(ctx interface{}) error {
	t, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	s, e := t.Session, t.Event

	embedMsg, file := buildAboutMessage()

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embedMsg},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	}
	if file != nil {
		resp.Data.Files = []*discordgo.File{file}
	}
	return s.InteractionRespond(e.Interaction, resp)
}

// buildAboutMessage assembles the about embed. The banner attaches only when
// the asset exists on disk; a missing file degrades to a plain embed.
func buildAboutMessage() (*discordgo.MessageEmbed, *discordgo.File) {
	buildDate := "unknown"
	if version.BuildDate != "" {
		if t, err := time.Parse(time.RFC3339, version.BuildDate); err == nil {
			buildDate = t.Format("2006-01-02")
		}
	}

	goVer := "unknown"
	if version.GoVersion != "" {
		goVer = strings.TrimPrefix(version.GoVersion, "go")
	}

	embedMsg := embed.NewEmbed().
		SetColor(bot.EmbedColor).
		SetDescription(fmt.Sprintf("ℹ️ **About %s**\n\n%s", version.AppName, version.AppDescription)).
		AddField("Version", version.Version).
		AddField("Release", fmt.Sprintf("%s (Go %s)", buildDate, goVer)).
		AddField("Repository", "https://github.com/stewardbot/steward")

	imageName := filepath.Base(aboutBannerPath)
	imageFile, err := os.Open(aboutBannerPath)
	if err != nil {
		return embedMsg.MessageEmbed, nil
	}

	embedMsg = embedMsg.SetImage("attachment://" + imageName)
	return embedMsg.MessageEmbed, &discordgo.File{
		Name:   imageName,
		Reader: imageFile,
	}
}

func init() {
	command.RegisterCommand(
		&AboutCommand{},
		middleware.WithModuleAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
