package config

import (
	"errors"
	"fmt"
	"path/filepath"

	apperrors "github.com/SatisfactoryServerManager/VeinLauncher/app/errors"
	"github.com/SatisfactoryServerManager/VeinLauncher/app/utils"
	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

var DefaultEnvFile = "/run/secrets/vein.env"

type Config struct {
	ConfigPath  string `env:"CONFIG_PATH"`
	ServerDir   string `env:"SERVER_DIR" default:"/home/steam/vein"`
	SteamCMDDir string `env:"STEAMCMD_DIR" default:"/home/steam/steamcmd"`
	LogDir      string `env:"LOG_DIR"`
	Debug       bool   `env:"DEBUG" default:"false"`

	PUID int `env:"PUID" default:"1000"`
	PGID int `env:"PGID" default:"1000"`

	SteamAppID          int    `env:"STEAM_APP_ID" default:"2131400"`
	SteamBranch         string `env:"STEAM_BRANCH" default:"public"`
	SteamBranchPassword string `env:"STEAM_BRANCH_PASSWORD"`
	UpdateOnStart       bool   `env:"UPDATE_ON_START" default:"true"`
	SteamValidate       bool   `env:"STEAM_VALIDATE" default:"false"`
	SteamCMDDownload    bool   `env:"STEAMCMD_AUTO_DOWNLOAD" default:"true"`

	GamePort  int    `env:"GAME_PORT" default:"7777"`
	QueryPort int    `env:"QUERY_PORT" default:"27015"`
	Multihome string `env:"MULTIHOME"`
	ExtraArgs string `env:"SERVER_ARGS"`
}

// Load reads the configuration from the environment. Variables found in
// envFile are added first without overriding anything already set; a
// missing envFile is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" && utils.CheckFileExists(envFile) {
		if err := godotenv.Load(envFile); err != nil {
			return nil, apperrors.IO("load env file", envFile, err)
		}
		utils.InfoLogger.Printf("Loaded environment file: %s", envFile)
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.ServerDir, _ = filepath.Abs(cfg.ServerDir)
	cfg.SteamCMDDir, _ = filepath.Abs(cfg.SteamCMDDir)

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.ConfigPath == "" {
		return apperrors.MissingConfig("CONFIG_PATH is required")
	}

	ports := []struct {
		name string
		port int
	}{
		{"GAME_PORT", c.GamePort},
		{"QUERY_PORT", c.QueryPort},
	}
	for _, p := range ports {
		if p.port < 1 || p.port > 65535 {
			return fmt.Errorf("%s must be between 1 and 65535, got %d", p.name, p.port)
		}
	}

	if c.PUID < 0 || c.PGID < 0 {
		return errors.New("PUID and PGID must not be negative")
	}

	return nil
}
