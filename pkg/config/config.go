package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	toml2 "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/yaml2config/pkg/errors"
	"github.com/arthur-debert/yaml2config/pkg/logging"
)

const (
	// AppDirName is the directory name under XDG_CONFIG_HOME
	AppDirName = "yaml2config"

	// EnvPrefix prefixes every environment override
	EnvPrefix = "YAML2CONFIG_"
)

// Keys, as used by koanf and by flag overrides
const (
	KeyTemplateDir     = "template_dir"
	KeyOutDir          = "out_dir"
	KeyTemplateSuffix  = "template_suffix"
	KeyUpdateTemplates = "update_templates"
	KeySyncRemote      = "sync.remote"
	KeySyncBranch      = "sync.branch"
	KeyLogFile         = "log.file"
)

// userConfigNames are probed in order under the XDG config directory
var userConfigNames = []string{"config.toml", "config.yaml", "config.yml"}

// Config holds the effective settings for one run
type Config struct {
	TemplateDir     string     `koanf:"template_dir" toml:"template_dir"`
	OutDir          string     `koanf:"out_dir" toml:"out_dir"`
	TemplateSuffix  string     `koanf:"template_suffix" toml:"template_suffix"`
	UpdateTemplates bool       `koanf:"update_templates" toml:"update_templates"`
	Sync            SyncConfig `koanf:"sync" toml:"sync"`
	Log             LogConfig  `koanf:"log" toml:"log"`

	// Source is the user config file that was loaded, if any
	Source string `koanf:"-" toml:"-"`
}

// SyncConfig selects what the template repository is pulled from
type SyncConfig struct {
	Remote string `koanf:"remote" toml:"remote"`
	Branch string `koanf:"branch" toml:"branch"`
}

// LogConfig controls diagnostics output
type LogConfig struct {
	File bool `koanf:"file" toml:"file"`
}

// LoadOptions tunes Load
type LoadOptions struct {
	// ConfigFile is an explicit user config file; it must exist when set
	ConfigFile string

	// Overrides are flag values keyed by koanf path
	Overrides map[string]interface{}
}

// Load builds the effective configuration from all layers
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config file
	source, err := userConfigPath(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if source != "" {
		parser, err := parserFor(source)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(source), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", source)
		}
		logger.Debug().Str("path", source).Msg("Loaded user config")
	}

	// 3. Environment
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	// 4. Flags
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply flag overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			TagName:          "koanf",
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to decode configuration")
	}
	cfg.Source = source

	logger.Debug().
		Str("templateDir", cfg.TemplateDir).
		Str("outDir", cfg.OutDir).
		Str("suffix", cfg.TemplateSuffix).
		Bool("updateTemplates", cfg.UpdateTemplates).
		Msg("Configuration loaded")

	return &cfg, nil
}

// userConfigPath returns the user config file to load, or "" if none
func userConfigPath(explicit string) (string, error) {
	if explicit != "" {
		info, err := os.Stat(explicit)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", explicit)
		}
		if info.IsDir() {
			return "", errors.Newf(errors.ErrConfigLoad, "config file %s is a directory", explicit)
		}
		return explicit, nil
	}

	for _, name := range userConfigNames {
		path := filepath.Join(configHome(), AppDirName, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", nil
}

// configHome honours XDG_CONFIG_HOME when set, otherwise the xdg default
func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	return xdg.ConfigHome
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return kyaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad,
			"unsupported config file format %q (use .toml, .yaml or .yml)", path)
	}
}

// Dump renders the configuration as TOML
func Dump(cfg *Config) (string, error) {
	out, err := toml2.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode configuration: %w", err)
	}
	return string(out), nil
}
