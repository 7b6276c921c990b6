package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/cardroom/rummyd/internal/game"
)

// Config is the daemon configuration, loaded from an HCL file.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Game   GameSettings   `hcl:"game,block"`
}

// ServerSettings contains listener-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// GameSettings contains the room rule tunables.
type GameSettings struct {
	TurnSeconds    int `hcl:"turn_seconds,optional"`
	BotChainLimit  int `hcl:"bot_chain_limit,optional"`
	TimeoutLimit   int `hcl:"timeout_limit,optional"`
	MaxPlayers     int `hcl:"max_players,optional"`
	Decks          int `hcl:"decks,optional"`            // 0 sizes the shoe by player count
	RoomTTLMinutes int `hcl:"room_ttl_minutes,optional"` // 0 disables eviction
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     3000,
			LogLevel: "info",
		},
		Game: GameSettings{
			TurnSeconds:    30,
			BotChainLimit:  10,
			TimeoutLimit:   10,
			MaxPlayers:     6,
			RoomTTLMinutes: 60,
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to defaults
// when the file does not exist. Missing fields get default values.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := DefaultConfig()
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Game.TurnSeconds == 0 {
		config.Game.TurnSeconds = defaults.Game.TurnSeconds
	}
	if config.Game.BotChainLimit == 0 {
		config.Game.BotChainLimit = defaults.Game.BotChainLimit
	}
	if config.Game.TimeoutLimit == 0 {
		config.Game.TimeoutLimit = defaults.Game.TimeoutLimit
	}
	if config.Game.MaxPlayers == 0 {
		config.Game.MaxPlayers = defaults.Game.MaxPlayers
	}

	return &config, nil
}

// Rules converts the game settings into room rules.
func (c *Config) Rules() game.Rules {
	return game.Rules{
		TurnDuration:  time.Duration(c.Game.TurnSeconds) * time.Second,
		BotChainLimit: c.Game.BotChainLimit,
		TimeoutLimit:  c.Game.TimeoutLimit,
		MaxPlayers:    c.Game.MaxPlayers,
		DeckOverride:  c.Game.Decks,
	}
}

// RoomTTL returns the idle eviction TTL, zero meaning eviction disabled.
func (c *Config) RoomTTL() time.Duration {
	return time.Duration(c.Game.RoomTTLMinutes) * time.Minute
}
