// Package config loads the game configuration from TOML or YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window    WindowConfig    `toml:"window" yaml:"window"`
	World     WorldConfig     `toml:"world" yaml:"world"`
	Move      MoveConfig      `toml:"move" yaml:"move"`
	Damage    DamageConfig    `toml:"damage" yaml:"damage"`
	PowerUp   PowerUpConfig   `toml:"power_up" yaml:"power_up"`
	Audio     AudioConfig     `toml:"audio" yaml:"audio"`
	Logging   LoggingConfig   `toml:"logging" yaml:"logging"`
	Debug     DebugConfig     `toml:"debug" yaml:"debug"`
	HighScore HighScoreConfig `toml:"high_score" yaml:"high_score"`
}

type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
}

type WorldConfig struct {
	Width     float32 `toml:"width" yaml:"width"`
	Height    float32 `toml:"height" yaml:"height"`
	UnitScale float32 `toml:"unit_scale" yaml:"unit_scale"` // world units per pixel
}

type MoveConfig struct {
	FixedStep              float32 `toml:"fixed_step" yaml:"fixed_step"`
	HorizontalAcceleration float32 `toml:"horizontal_acceleration" yaml:"horizontal_acceleration"`
	VerticalAcceleration   float32 `toml:"vertical_acceleration" yaml:"vertical_acceleration"`
	MaxHorizontalSpeed     float32 `toml:"max_horizontal_speed" yaml:"max_horizontal_speed"`
	MaxVerticalNegative    float32 `toml:"max_vertical_negative" yaml:"max_vertical_negative"` // downward speed cap
	MaxVerticalPositive    float32 `toml:"max_vertical_positive" yaml:"max_vertical_positive"` // upward speed cap
	FloorHeight            float32 `toml:"floor_height" yaml:"floor_height"`
	MaxFrameDelta          float32 `toml:"max_frame_delta" yaml:"max_frame_delta"`
}

type DamageConfig struct {
	AreaHeight      float32 `toml:"area_height" yaml:"area_height"`
	PerSecond       float32 `toml:"per_second" yaml:"per_second"`
	DeathDelay      float32 `toml:"death_delay" yaml:"death_delay"`
	ExplosionSize   float32 `toml:"explosion_size" yaml:"explosion_size"`
	CameraShake     bool    `toml:"camera_shake" yaml:"camera_shake"`
	ShakeDuration   float32 `toml:"shake_duration" yaml:"shake_duration"`
	ShakeDistortion float32 `toml:"shake_distortion" yaml:"shake_distortion"`
	MaxShakes       int     `toml:"max_shakes" yaml:"max_shakes"`
}

type PowerUpConfig struct {
	MinInterval float32 `toml:"min_interval" yaml:"min_interval"`
	MaxInterval float32 `toml:"max_interval" yaml:"max_interval"`
	Speed       float32 `toml:"speed" yaml:"speed"`
	SpawnY      float32 `toml:"spawn_y" yaml:"spawn_y"`
	DespawnY    float32 `toml:"despawn_y" yaml:"despawn_y"`
	Speed1Gain  float32 `toml:"speed_1_gain" yaml:"speed_1_gain"`
	Speed2Gain  float32 `toml:"speed_2_gain" yaml:"speed_2_gain"`
	LifeGain    float32 `toml:"life_gain" yaml:"life_gain"`
	ShieldGain  float32 `toml:"shield_gain" yaml:"shield_gain"`
	Seed        uint64  `toml:"seed" yaml:"seed"` // 0 picks a random seed
}

type AudioConfig struct {
	Enabled    bool    `toml:"enabled" yaml:"enabled"`
	Volume     float64 `toml:"volume" yaml:"volume"` // 0 (silent) to 1
	SampleRate int     `toml:"sample_rate" yaml:"sample_rate"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
	File   string `toml:"file" yaml:"file"`     // empty logs to stderr
}

type DebugConfig struct {
	Enabled      bool    `toml:"enabled" yaml:"enabled"`
	Overlay      bool    `toml:"overlay" yaml:"overlay"`
	KeyInterval float32 `toml:"key_interval" yaml:"key_interval"`
	ShieldCheat float32 `toml:"shield_cheat" yaml:"shield_cheat"`
}

type HighScoreConfig struct {
	Path string `toml:"path" yaml:"path"`
}

// Load reads a TOML or YAML file, chosen by extension, over the defaults.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = decodeTOML(data, cfg)
	case ".yaml", ".yml":
		err = decodeYAML(data, cfg)
	default:
		err = fmt.Errorf("unsupported extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Default returns the stock game tuning.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Dark Matter",
			Width:  9 * 16 * 3,
			Height: 16 * 16 * 3,
		},
		World: WorldConfig{
			Width:     9,
			Height:    16,
			UnitScale: 1.0 / 16.0,
		},
		Move: MoveConfig{
			FixedStep:              1.0 / 25.0,
			HorizontalAcceleration: 16.5,
			VerticalAcceleration:   2.25,
			MaxHorizontalSpeed:     5.5,
			MaxVerticalNegative:    0.75,
			MaxVerticalPositive:    5,
			FloorHeight:            1,
			MaxFrameDelta:          1.0 / 20.0,
		},
		Damage: DamageConfig{
			AreaHeight:      1.5,
			PerSecond:       25,
			DeathDelay:      0.9,
			ExplosionSize:   1.5,
			CameraShake:     true,
			ShakeDuration:   0.25,
			ShakeDistortion: 0.25,
			MaxShakes:       4,
		},
		PowerUp: PowerUpConfig{
			MinInterval: 0.9,
			MaxInterval: 1.5,
			Speed:       -8.75,
			SpawnY:      16,
			DespawnY:    1,
			Speed1Gain:  3,
			Speed2Gain:  3.75,
			LifeGain:    25,
			ShieldGain:  25,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.5,
			SampleRate: 44100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Debug: DebugConfig{
			KeyInterval: 0.1,
			ShieldCheat: 25,
		},
		HighScore: HighScoreConfig{
			Path: "darkmatter-highscore.yaml",
		},
	}
}

// Validate checks the values the simulation depends on.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.World.Width > 0 && c.World.Height > 0, "world size must be positive, got %vx%v", c.World.Width, c.World.Height)
	check(c.World.UnitScale > 0, "world.unit_scale must be positive")
	check(c.Move.FixedStep > 0, "move.fixed_step must be positive, got %v", c.Move.FixedStep)
	check(c.Move.MaxHorizontalSpeed >= 0, "move.max_horizontal_speed must not be negative")
	check(c.Move.MaxVerticalNegative >= 0 && c.Move.MaxVerticalPositive >= 0, "move vertical caps must not be negative")
	check(c.Move.FloorHeight >= 0 && c.Move.FloorHeight < c.World.Height, "move.floor_height must lie inside the world")
	check(c.Damage.PerSecond >= 0, "damage.per_second must not be negative")
	check(c.Damage.DeathDelay >= 0, "damage.death_delay must not be negative")
	check(c.Damage.MaxShakes >= 0, "damage.max_shakes must not be negative")
	check(c.PowerUp.MinInterval > 0 && c.PowerUp.MinInterval <= c.PowerUp.MaxInterval,
		"power_up interval [%v, %v] is empty", c.PowerUp.MinInterval, c.PowerUp.MaxInterval)
	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be within [0, 1], got %v", c.Audio.Volume)
	check(!c.Audio.Enabled || c.Audio.SampleRate > 0, "audio.sample_rate must be positive")
	check(c.Logging.Format == "json" || c.Logging.Format == "console", "logging.format must be json or console, got %q", c.Logging.Format)
	check(c.Move.MaxFrameDelta > 0, "move.max_frame_delta must be positive")

	return errors.Join(errs...)
}
