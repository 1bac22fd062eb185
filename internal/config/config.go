package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

// Config is the process configuration, populated from the environment
// (optionally seeded by a .env file).
type Config struct {
	DiscordToken      string   `env:"DISCORD_TOKEN,required,notEmpty"`
	CommandPrefix     string   `env:"COMMAND_PREFIX" envDefault:"!"`
	StoragePath       string   `env:"STORAGE_PATH" envDefault:"data/steward.json"`
	LogPath           string   `env:"LOG_PATH" envDefault:"logs/steward.log"`
	LogLevel          string   `env:"LOG_LEVEL" envDefault:"info"`
	DeveloperID       string   `env:"DEVELOPER_ID"`
	InitSlashCommands bool     `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
	GuildBlacklist    []string `env:"GUILD_BLACKLIST" envSeparator:","`
}

// New parses the environment into a Config. Missing required values are fatal:
// there is nothing useful the bot can do without a token.
func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// IsDeveloper reports whether userID is the configured developer account.
func IsDeveloper(cfg *Config, userID string) bool {
	return cfg != nil && cfg.DeveloperID != "" && cfg.DeveloperID == userID
}
