package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the working directory when no --config is given.
const DefaultFileName = ".docbump.yaml"

// Duplicate policies.
const (
	DuplicateAppend = "append"
	DuplicateSkip   = "skip"
)

// Note styles.
const (
	NoteGeneric = "generic"
	NoteSummary = "summary"
)

// Global configuration structure.
type Global struct {
	APISourceDirs   []string `mapstructure:"api_source_dirs" yaml:"api_source_dirs"`
	DocFilePatterns []string `mapstructure:"doc_file_patterns" yaml:"doc_file_patterns"`
	BaseBranch      string   `mapstructure:"base_branch" yaml:"base_branch"`

	// Change source selection
	ChangeSource   string `mapstructure:"change_source" yaml:"change_source"`
	ChangesFile    string `mapstructure:"changes_file" yaml:"changes_file"`
	DiffTimeoutSec int    `mapstructure:"diff_timeout_sec" yaml:"diff_timeout_sec"`

	DuplicatePolicy string `mapstructure:"duplicate_policy" yaml:"duplicate_policy"`
	NoteStyle       string `mapstructure:"note_style" yaml:"note_style"`

	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	ReportPath string `mapstructure:"report_path" yaml:"report_path"`
}

// DiffTimeout returns the configured diff timeout as a duration.
func (c *Global) DiffTimeout() time.Duration {
	return time.Duration(c.DiffTimeoutSec) * time.Second
}

// Validate rejects values the updater cannot act on.
func (c *Global) Validate() error {
	if len(c.APISourceDirs) == 0 {
		return errors.New("api_source_dirs must not be empty")
	}
	if strings.TrimSpace(c.BaseBranch) == "" {
		return errors.New("base_branch must not be empty")
	}
	if c.DiffTimeoutSec <= 0 {
		return fmt.Errorf("invalid diff_timeout_sec: %d", c.DiffTimeoutSec)
	}
	switch c.DuplicatePolicy {
	case DuplicateAppend, DuplicateSkip:
	default:
		return fmt.Errorf("invalid duplicate_policy: %s (use append or skip)", c.DuplicatePolicy)
	}
	switch c.NoteStyle {
	case NoteGeneric, NoteSummary:
	default:
		return fmt.Errorf("invalid note_style: %s (use generic or summary)", c.NoteStyle)
	}
	return nil
}

// Save writes the given configuration to path as YAML.
func Save(c *Global, path string) error {
	if path == "" {
		path = DefaultFileName
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_source_dirs", []string{"src/api"})
	v.SetDefault("doc_file_patterns", []string{"**/README.md", "docs/**/*.md", "api/*.md"})
	v.SetDefault("base_branch", "main")
	v.SetDefault("change_source", "git")
	v.SetDefault("changes_file", "")
	v.SetDefault("diff_timeout_sec", 60)
	v.SetDefault("duplicate_policy", DuplicateAppend)
	v.SetDefault("note_style", NoteGeneric)
	v.SetDefault("log_file", "")
	v.SetDefault("report_path", "")
}

// Defaults returns the built-in configuration without reading files or env.
func Defaults() *Global {
	v := viper.New()
	setDefaults(v)
	var c Global
	// Defaults are static; Unmarshal cannot fail on them.
	_ = v.Unmarshal(&c)
	return &c
}

// Load loads configuration from file, env, and defaults. Without an explicit
// cfgFile, DefaultFileName is looked up in dir (the tree the run operates on).
// Precedence: env > config file > defaults. Flag overrides are applied by the caller.
func Load(cfgFile, dir string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCBUMP")
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if dir == "" {
			dir = "."
		}
		v.AddConfigPath(dir)
		v.SetConfigName(strings.TrimSuffix(DefaultFileName, ".yaml"))
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
