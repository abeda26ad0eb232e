// Package config loads the external server configuration contract spec.md
// section 6 names (ServerConfig: name, motd, protectionMode, playerPerms,
// levelName, levelSize, spawn?, generation, autoSaveMinutes), decoded from
// TOML via github.com/pelletier/go-toml the way the teacher's whitelist.go
// decodes its own persisted file with that same library.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"

	"github.com/blockvale/classic/block"
	"github.com/blockvale/classic/protocol"
)

// ProtectionMode is the tagged union spec.md section 6 describes:
// None | Password(string) | PasswordsByUser(map[username]password).
type ProtectionMode struct {
	Kind      ProtectionKind    `toml:"kind"`
	Password  string            `toml:"password,omitempty"`
	Passwords map[string]string `toml:"passwords,omitempty"`
}

type ProtectionKind string

const (
	ProtectionNone             ProtectionKind = "none"
	ProtectionPassword         ProtectionKind = "password"
	ProtectionPasswordsByUser  ProtectionKind = "passwords_by_user"
)

// SpawnConfig is the optional fixed spawn point a config file may set,
// overriding the hardcoded default spec.md section 9 documents as an open
// question.
type SpawnConfig struct {
	X     float64 `toml:"x"`
	Y     float64 `toml:"y"`
	Z     float64 `toml:"z"`
	Yaw   uint8   `toml:"yaw"`
	Pitch uint8   `toml:"pitch"`
}

// Config is the ServerConfig contract named in spec.md section 6.
type Config struct {
	Name             string         `toml:"name"`
	MOTD             string         `toml:"motd"`
	Protection       ProtectionMode `toml:"protection"`
	PlayerPerms      map[string]string `toml:"player_perms"`
	LevelName        string         `toml:"level_name"`
	LevelSizeX       int            `toml:"level_size_x"`
	LevelSizeY       int            `toml:"level_size_y"`
	LevelSizeZ       int            `toml:"level_size_z"`
	Spawn            *SpawnConfig   `toml:"spawn"`
	Generation       string         `toml:"generation"`
	AutoSaveMinutes  int            `toml:"auto_save_minutes"`
}

// Default returns the configuration used when no file is present: an
// unprotected 64x64x64 flat level named "world".
func Default() Config {
	return Config{
		Name:            "Classic Server",
		MOTD:            "A blockvale/classic server",
		Protection:      ProtectionMode{Kind: ProtectionNone},
		LevelName:       "world",
		LevelSizeX:      64,
		LevelSizeY:      64,
		LevelSizeZ:      64,
		Generation:      "flat",
		AutoSaveMinutes: 5,
	}
}

// Load reads and decodes a TOML config file at path. A missing file is not
// an error: Default() is returned instead, matching the teacher's
// LoadWhitelist pattern of tolerating an absent persisted file on first run.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// PermissionFor resolves the configured default permission for username, or
// Normal if unlisted.
func (c Config) PermissionFor(username string) block.Permission {
	switch c.PlayerPerms[username] {
	case "Moderator":
		return block.Moderator
	case "Operator":
		return block.Operator
	default:
		return block.Normal
	}
}

// SpawnPointOr returns the configured fixed spawn as a Fixed-point triple, or
// ok=false if none was set (callers fall back to the hardcoded default).
func (s *SpawnConfig) SpawnPointOr() (x, y, z protocol.Fixed, yaw, pitch uint8, ok bool) {
	if s == nil {
		return 0, 0, 0, 0, 0, false
	}
	return protocol.Fixed(s.X), protocol.Fixed(s.Y), protocol.Fixed(s.Z), s.Yaw, s.Pitch, true
}
