// Package config provides Viper-based configuration loading for the
// Hollowdelve game loop.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// GameplayConfig holds every gameplay tunable consumed by the core
// systems. Defaults mirror the game's baseline balance values.
type GameplayConfig struct {
	// PlayerBaseHP is the player's starting (and maximum) hit points.
	PlayerBaseHP int `mapstructure:"player_base_hp"`
	// PlayerBaseDamage is the player's starting attack damage.
	PlayerBaseDamage int `mapstructure:"player_base_damage"`
	// PlayerSpeed is the player's movement speed in tiles per second.
	PlayerSpeed float64 `mapstructure:"player_speed"`
	// DodgeCooldown is the delay in seconds between dodges.
	DodgeCooldown float64 `mapstructure:"dodge_cooldown"`
	// DodgeDuration is the i-frame window in seconds of a dodge.
	DodgeDuration float64 `mapstructure:"dodge_duration"`
	// StaminaMax is the player's maximum stamina.
	StaminaMax int `mapstructure:"stamina_max"`
	// StaminaRegen is stamina restored per second.
	StaminaRegen float64 `mapstructure:"stamina_regen"`
	// VisionRange is the fog-of-war reveal radius in tiles.
	VisionRange int `mapstructure:"vision_range"`

	// StartingGold, StartingSouls, and StartingKeys seed the three
	// currencies at the start of each run.
	StartingGold  int `mapstructure:"starting_gold"`
	StartingSouls int `mapstructure:"starting_souls"`
	StartingKeys  int `mapstructure:"starting_keys"`

	// MinRoomSize and MaxRoomSize bound generated room extents.
	MinRoomSize int `mapstructure:"min_room_size"`
	MaxRoomSize int `mapstructure:"max_room_size"`
	// RoomsPerFloor is the fixed room count per generated floor.
	RoomsPerFloor int `mapstructure:"rooms_per_floor"`

	// HPScalePerFloor and DamageScalePerFloor are the geometric
	// per-floor enemy growth factors.
	HPScalePerFloor     float64 `mapstructure:"hp_scale_per_floor"`
	DamageScalePerFloor float64 `mapstructure:"damage_scale_per_floor"`
	// EnemyDensityIncrease adds floor(floor x increase) enemies to
	// each populated room.
	EnemyDensityIncrease float64 `mapstructure:"enemy_density_increase"`

	// AttackRange is the player's attack reach in tiles.
	AttackRange float64 `mapstructure:"attack_range"`
	// TelegraphSeconds is the enemy attack wind-up duration.
	TelegraphSeconds float64 `mapstructure:"telegraph_seconds"`
	// AttackCooldownSeconds is the enemy cooldown after an attack.
	AttackCooldownSeconds float64 `mapstructure:"attack_cooldown_seconds"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// SimConfig holds settings for the headless simulation loop.
type SimConfig struct {
	// TickRate is the frame rate of the fixed-step loop.
	TickRate int `mapstructure:"tick_rate"`
	// Seed selects the deterministic random stream; 0 means a
	// non-deterministic crypto-backed source.
	Seed int64 `mapstructure:"seed"`
	// MaxFrames stops the loop after that many frames; 0 means
	// unbounded.
	MaxFrames int `mapstructure:"max_frames"`
}

// Config is the top-level application configuration.
type Config struct {
	Gameplay GameplayConfig `mapstructure:"gameplay"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Sim      SimConfig      `mapstructure:"sim"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error
// describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateGameplay(c.Gameplay); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSim(c.Sim); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGameplay(g GameplayConfig) error {
	var errs []string
	if g.PlayerBaseHP < 1 {
		errs = append(errs, fmt.Sprintf("gameplay.player_base_hp must be >= 1, got %d", g.PlayerBaseHP))
	}
	if g.PlayerBaseDamage < 1 {
		errs = append(errs, fmt.Sprintf("gameplay.player_base_damage must be >= 1, got %d", g.PlayerBaseDamage))
	}
	if g.PlayerSpeed <= 0 {
		errs = append(errs, fmt.Sprintf("gameplay.player_speed must be > 0, got %v", g.PlayerSpeed))
	}
	if g.DodgeCooldown < 0 {
		errs = append(errs, "gameplay.dodge_cooldown must not be negative")
	}
	if g.DodgeDuration < 0 {
		errs = append(errs, "gameplay.dodge_duration must not be negative")
	}
	if g.StaminaMax < 1 {
		errs = append(errs, fmt.Sprintf("gameplay.stamina_max must be >= 1, got %d", g.StaminaMax))
	}
	if g.StaminaRegen < 0 {
		errs = append(errs, "gameplay.stamina_regen must not be negative")
	}
	if g.VisionRange < 1 {
		errs = append(errs, fmt.Sprintf("gameplay.vision_range must be >= 1, got %d", g.VisionRange))
	}
	if g.StartingGold < 0 || g.StartingSouls < 0 || g.StartingKeys < 0 {
		errs = append(errs, "gameplay starting currencies must not be negative")
	}
	if g.MinRoomSize < 3 {
		errs = append(errs, fmt.Sprintf("gameplay.min_room_size must be >= 3, got %d", g.MinRoomSize))
	}
	if g.MaxRoomSize < g.MinRoomSize {
		errs = append(errs, fmt.Sprintf("gameplay.max_room_size must be >= min_room_size, got %d < %d", g.MaxRoomSize, g.MinRoomSize))
	}
	// Two rooms minimum: every floor needs a start and a boss room.
	if g.RoomsPerFloor < 2 {
		errs = append(errs, fmt.Sprintf("gameplay.rooms_per_floor must be >= 2, got %d", g.RoomsPerFloor))
	}
	if g.HPScalePerFloor < 1.0 {
		errs = append(errs, fmt.Sprintf("gameplay.hp_scale_per_floor must be >= 1.0, got %v", g.HPScalePerFloor))
	}
	if g.DamageScalePerFloor < 1.0 {
		errs = append(errs, fmt.Sprintf("gameplay.damage_scale_per_floor must be >= 1.0, got %v", g.DamageScalePerFloor))
	}
	if g.EnemyDensityIncrease < 0 {
		errs = append(errs, "gameplay.enemy_density_increase must not be negative")
	}
	if g.AttackRange <= 0 {
		errs = append(errs, fmt.Sprintf("gameplay.attack_range must be > 0, got %v", g.AttackRange))
	}
	if g.TelegraphSeconds < 0 {
		errs = append(errs, "gameplay.telegraph_seconds must not be negative")
	}
	if g.AttackCooldownSeconds < 0 {
		errs = append(errs, "gameplay.attack_cooldown_seconds must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateSim(s SimConfig) error {
	var errs []string
	if s.TickRate < 1 {
		errs = append(errs, fmt.Sprintf("sim.tick_rate must be >= 1, got %d", s.TickRate))
	}
	if s.MaxFrames < 0 {
		errs = append(errs, fmt.Sprintf("sim.max_frames must be >= 0, got %d", s.MaxFrames))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies
// environment variable overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with HOLLOWDELVE_ prefix
	v.SetEnvPrefix("HOLLOWDELVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration, already validated by
// construction.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Unmarshalling defaults cannot fail: the keys are set above and
	// the types match the struct fields.
	if err := v.Unmarshal(&cfg); err != nil {
		panic("config: unmarshalling defaults: " + err.Error())
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("gameplay.player_base_hp", 100)
	v.SetDefault("gameplay.player_base_damage", 10)
	v.SetDefault("gameplay.player_speed", 4.0)
	v.SetDefault("gameplay.dodge_cooldown", 2.0)
	v.SetDefault("gameplay.dodge_duration", 0.5)
	v.SetDefault("gameplay.stamina_max", 100)
	v.SetDefault("gameplay.stamina_regen", 20.0)
	v.SetDefault("gameplay.vision_range", 5)
	v.SetDefault("gameplay.starting_gold", 50)
	v.SetDefault("gameplay.starting_souls", 0)
	v.SetDefault("gameplay.starting_keys", 1)
	v.SetDefault("gameplay.min_room_size", 5)
	v.SetDefault("gameplay.max_room_size", 9)
	v.SetDefault("gameplay.rooms_per_floor", 10)
	v.SetDefault("gameplay.hp_scale_per_floor", 1.15)
	v.SetDefault("gameplay.damage_scale_per_floor", 1.10)
	v.SetDefault("gameplay.enemy_density_increase", 0.1)
	v.SetDefault("gameplay.attack_range", 2.0)
	v.SetDefault("gameplay.telegraph_seconds", 0.5)
	v.SetDefault("gameplay.attack_cooldown_seconds", 2.0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("sim.tick_rate", 60)
	v.SetDefault("sim.seed", 0)
	v.SetDefault("sim.max_frames", 0)
}
