package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Board      BoardConfig      `mapstructure:"board"`
	Factions   FactionsConfig   `mapstructure:"factions"`
	Roster     RosterConfig     `mapstructure:"roster"`
	Output     OutputConfig     `mapstructure:"output"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// SimulationConfig holds batch settings
type SimulationConfig struct {
	Games               int   `mapstructure:"games"`
	MaxMoves            int   `mapstructure:"max_moves"`
	Seed                int64 `mapstructure:"seed"` // 0 means time based
	MaxResampleAttempts int   `mapstructure:"max_resample_attempts"`
}

// BoardConfig holds the board dimensions
type BoardConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// FactionsConfig holds the per faction learning parameters
type FactionsConfig struct {
	Faction0 FactionConfig `mapstructure:"faction_0"`
	Faction1 FactionConfig `mapstructure:"faction_1"`
}

// FactionConfig holds the learning parameters of one faction
type FactionConfig struct {
	MutationChance   float64 `mapstructure:"mutation_chance"`
	LookbackDistance int     `mapstructure:"lookback_distance"`
}

// ByID returns the settings of faction 0 or 1
func (f FactionsConfig) ByID(id int) FactionConfig {
	if id == 1 {
		return f.Faction1
	}
	return f.Faction0
}

// RosterConfig holds the stat blocks of the unit kinds
type RosterConfig struct {
	Footman UnitConfig `mapstructure:"footman"`
	Archer  UnitConfig `mapstructure:"archer"`
}

// UnitConfig holds the combat stats of one unit kind
type UnitConfig struct {
	AttackRange  int `mapstructure:"attack_range"`
	AttackDamage int `mapstructure:"attack_damage"`
	MaxHP        int `mapstructure:"max_hp"`
}

// OutputConfig holds report file settings
type OutputConfig struct {
	Dir          string `mapstructure:"dir"`
	SummaryFile  string `mapstructure:"summary_file"`
	TraceEnabled bool   `mapstructure:"trace_enabled"`
	TraceGames   []int  `mapstructure:"trace_games"` // empty means first, middle and last
	HistoryFile  string `mapstructure:"history_file"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("simulation.games", 1000)
	v.SetDefault("simulation.max_moves", 200)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.max_resample_attempts", 64)

	v.SetDefault("board.width", 8)
	v.SetDefault("board.height", 8)

	v.SetDefault("factions.faction_0.mutation_chance", 0.0)
	v.SetDefault("factions.faction_0.lookback_distance", 100)
	v.SetDefault("factions.faction_1.mutation_chance", 0.001)
	v.SetDefault("factions.faction_1.lookback_distance", 100)

	v.SetDefault("roster.footman.attack_range", 2)
	v.SetDefault("roster.footman.attack_damage", 5)
	v.SetDefault("roster.footman.max_hp", 9)
	v.SetDefault("roster.archer.attack_range", 5)
	v.SetDefault("roster.archer.attack_damage", 3)
	v.SetDefault("roster.archer.max_hp", 5)

	v.SetDefault("output.dir", "out")
	v.SetDefault("output.summary_file", "gameOut.txt")
	v.SetDefault("output.trace_enabled", true)
	v.SetDefault("output.trace_games", []int{})
	v.SetDefault("output.history_file", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/grid-skirmish")
	}

	v.SetEnvPrefix("GSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing file falls back to defaults; anything else, such as a
	// malformed file, is an error.
	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return fmt.Errorf("error reading config file: %w", err)
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil && !isNotFound(err) {
		return fmt.Errorf("error merging environment config %s: %w", envFile, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. Each valid change is
// decoded into a fresh Config handed to onChange; the config returned by Get,
// including any flag overrides applied to it, is left untouched. Invalid
// edits are reported through onError when it is non-nil.
func WatchConfig(onChange func(*Config), onError func(error)) {
	vp := v
	vp.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		next := &Config{}
		err := vp.Unmarshal(next)
		if err == nil {
			err = Validate(next)
		}
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reloading %s: %w", e.Name, err))
			}
			return
		}
		if onChange != nil {
			onChange(next)
		}
	})
	vp.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Simulation.Games < 1 {
		return fmt.Errorf("simulation.games must be positive")
	}
	if c.Simulation.MaxMoves < 1 {
		return fmt.Errorf("simulation.max_moves must be positive")
	}
	if c.Simulation.MaxResampleAttempts < 1 {
		return fmt.Errorf("simulation.max_resample_attempts must be positive")
	}

	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		return fmt.Errorf("board dimensions must be positive")
	}
	// Factions start in the first and last column on rows 0 to 7
	if c.Board.Width < 2 || c.Board.Height < 8 {
		return fmt.Errorf("board must be at least 2 wide and 8 high to place both factions")
	}

	for id, f := range []FactionConfig{c.Factions.Faction0, c.Factions.Faction1} {
		if f.MutationChance < 0 || f.MutationChance > 1 {
			return fmt.Errorf("factions.faction_%d.mutation_chance must be between 0 and 1", id)
		}
		if f.LookbackDistance < 1 {
			return fmt.Errorf("factions.faction_%d.lookback_distance must be at least 1", id)
		}
	}

	validateUnit := func(u UnitConfig, name string) error {
		if u.AttackRange < 1 {
			return fmt.Errorf("roster.%s.attack_range must be at least 1", name)
		}
		if u.AttackDamage < 0 {
			return fmt.Errorf("roster.%s.attack_damage must be non-negative", name)
		}
		if u.MaxHP < 1 {
			return fmt.Errorf("roster.%s.max_hp must be at least 1", name)
		}
		return nil
	}
	if err := validateUnit(c.Roster.Footman, "footman"); err != nil {
		return err
	}
	if err := validateUnit(c.Roster.Archer, "archer"); err != nil {
		return err
	}

	for _, g := range c.Output.TraceGames {
		if g < 1 || g > c.Simulation.Games {
			return fmt.Errorf("output.trace_games entry %d must be between 1 and simulation.games", g)
		}
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}

	return nil
}
