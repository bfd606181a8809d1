/*
Package config manages the TOML config for passcloud.

The config file lives at [UserConfigDir]/passcloud/config.toml and is created
with defaults on first run. A file with a syntax or type error is not fatal:
whatever sections can still be read are applied on top of the defaults.
*/
package config

import (
	"path/filepath"

	"github.com/bastiangx/passcloud/internal/utils"
	"github.com/charmbracelet/log"
)

const configFileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Analysis AnalysisConfig `toml:"analysis"`
	Cloud    CloudConfig    `toml:"cloud"`
	Render   RenderConfig   `toml:"render"`
	Server   ServerConfig   `toml:"server"`
	CLI      CliConfig      `toml:"cli"`
}

// AnalysisConfig tunes the analysis engines.
type AnalysisConfig struct {
	PartialLimit   int    `toml:"partial_limit"`
	MaxAffixLength int    `toml:"max_affix_length"`
	StemsFile      string `toml:"stems_file"`
}

// CloudConfig holds word cloud options.
type CloudConfig struct {
	MaxWords int  `toml:"max_words"`
	StemMode bool `toml:"stem_mode"`
}

// RenderConfig holds terminal output options.
type RenderConfig struct {
	DarkMode bool   `toml:"dark_mode"`
	BarWidth int    `toml:"bar_width"`
	Format   string `toml:"format"`
}

// ServerConfig caps the size of IPC responses.
type ServerConfig struct {
	MaxPhrases    int `toml:"max_phrases"`
	MaxCloudWords int `toml:"max_cloud_words"`
}

// CliConfig holds interactive prompt options.
type CliConfig struct {
	MinPrefix   int `toml:"min_prefix"`
	MaxPrefix   int `toml:"max_prefix"`
	LookupLimit int `toml:"lookup_limit"`
}

// Formats accepted by RenderConfig.Format.
var Formats = []string{"text", "markdown", "json", "yaml"}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			PartialLimit:   200,
			MaxAffixLength: 8,
		},
		Cloud: CloudConfig{
			MaxWords: 150,
		},
		Render: RenderConfig{
			BarWidth: 30,
			Format:   "text",
		},
		Server: ServerConfig{
			MaxPhrases:    200,
			MaxCloudWords: 500,
		},
		CLI: CliConfig{
			MinPrefix:   1,
			MaxPrefix:   32,
			LookupLimit: 20,
		},
	}
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	resolver, err := utils.NewPathResolver()
	if err != nil {
		return "", err
	}
	return resolver.GetConfigPath(configFileName)
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/passcloud/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at %s: %v. Using built-in defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		return nil, err
	}
	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			return nil, err
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}
	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Invalid values are replaced by defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		config = tryPartialParse(configPath)
	}
	config.sanitize()
	return config, nil
}

// tryPartialParse salvages the sections that still decode on their own.
func tryPartialParse(configPath string) *Config {
	config := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Using all defaults for %s", configPath)
		return config
	}

	if section, ok := utils.ExtractSection(raw, "analysis"); ok {
		setInt(section, "partial_limit", &config.Analysis.PartialLimit)
		setInt(section, "max_affix_length", &config.Analysis.MaxAffixLength)
		setString(section, "stems_file", &config.Analysis.StemsFile)
	}
	if section, ok := utils.ExtractSection(raw, "cloud"); ok {
		setInt(section, "max_words", &config.Cloud.MaxWords)
		setBool(section, "stem_mode", &config.Cloud.StemMode)
	}
	if section, ok := utils.ExtractSection(raw, "render"); ok {
		setBool(section, "dark_mode", &config.Render.DarkMode)
		setInt(section, "bar_width", &config.Render.BarWidth)
		setString(section, "format", &config.Render.Format)
	}
	if section, ok := utils.ExtractSection(raw, "server"); ok {
		setInt(section, "max_phrases", &config.Server.MaxPhrases)
		setInt(section, "max_cloud_words", &config.Server.MaxCloudWords)
	}
	if section, ok := utils.ExtractSection(raw, "cli"); ok {
		setInt(section, "min_prefix", &config.CLI.MinPrefix)
		setInt(section, "max_prefix", &config.CLI.MaxPrefix)
		setInt(section, "lookup_limit", &config.CLI.LookupLimit)
	}
	return config
}

func setInt(section map[string]any, key string, dst *int) {
	if v, ok := utils.ExtractInt64(section, key); ok {
		*dst = v
	}
}

func setBool(section map[string]any, key string, dst *bool) {
	if v, ok := utils.ExtractBool(section, key); ok {
		*dst = v
	}
}

func setString(section map[string]any, key string, dst *string) {
	if v, ok := utils.ExtractString(section, key); ok {
		*dst = v
	}
}

// sanitize resets out-of-range values to their defaults.
func (c *Config) sanitize() {
	def := DefaultConfig()
	positive := func(name string, v *int, fallback int) {
		if *v <= 0 {
			log.Warnf("Invalid %s=%d, using %d", name, *v, fallback)
			*v = fallback
		}
	}
	positive("analysis.partial_limit", &c.Analysis.PartialLimit, def.Analysis.PartialLimit)
	positive("analysis.max_affix_length", &c.Analysis.MaxAffixLength, def.Analysis.MaxAffixLength)
	positive("render.bar_width", &c.Render.BarWidth, def.Render.BarWidth)
	positive("server.max_phrases", &c.Server.MaxPhrases, def.Server.MaxPhrases)
	positive("server.max_cloud_words", &c.Server.MaxCloudWords, def.Server.MaxCloudWords)
	positive("cli.min_prefix", &c.CLI.MinPrefix, def.CLI.MinPrefix)
	positive("cli.lookup_limit", &c.CLI.LookupLimit, def.CLI.LookupLimit)
	if c.Cloud.MaxWords < 0 {
		c.Cloud.MaxWords = def.Cloud.MaxWords
	}
	if c.CLI.MaxPrefix < c.CLI.MinPrefix {
		log.Warnf("cli.max_prefix %d below min_prefix %d, using %d", c.CLI.MaxPrefix, c.CLI.MinPrefix, def.CLI.MaxPrefix)
		c.CLI.MaxPrefix = max(def.CLI.MaxPrefix, c.CLI.MinPrefix)
	}
	if !ValidFormat(c.Render.Format) {
		log.Warnf("Unknown render.format %q, using %q", c.Render.Format, def.Render.Format)
		c.Render.Format = def.Render.Format
	}
}

// ValidFormat reports whether format is one of Formats.
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() (string, error) {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return "", err
	}
	return defaultPath, SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
