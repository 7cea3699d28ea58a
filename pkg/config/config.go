package config

import (
	_ "embed"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	serrors "github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/types"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix is the prefix of environment variables read as settings.
const EnvPrefix = "SAVELINK_"

// Config holds every setting.
type Config struct {
	History History `koanf:"history" json:"history" yaml:"history"`
	Links   Links   `koanf:"links" json:"links" yaml:"links"`
	Games   Games   `koanf:"games" json:"games" yaml:"games"`
	Lock    Lock    `koanf:"lock" json:"lock" yaml:"lock"`
}

type History struct {
	MaxEntries int  `koanf:"max_entries" json:"max_entries" yaml:"max_entries"`
	Persist    bool `koanf:"persist" json:"persist" yaml:"persist"`
}

type Links struct {
	Mechanisms []string `koanf:"mechanisms" json:"mechanisms" yaml:"mechanisms"`
}

type Games struct {
	SaveDirName     string   `koanf:"save_dir_name" json:"save_dir_name" yaml:"save_dir_name"`
	BackupDirName   string   `koanf:"backup_dir_name" json:"backup_dir_name" yaml:"backup_dir_name"`
	Executables     []string `koanf:"executables" json:"executables" yaml:"executables"`
	CaseInsensitive bool     `koanf:"case_insensitive" json:"case_insensitive" yaml:"case_insensitive"`
}

type Lock struct {
	Timeout time.Duration `koanf:"timeout" json:"timeout" yaml:"timeout"`
}

// Options controls where settings are read from.
type Options struct {
	// SettingsPath is the optional user settings file.
	SettingsPath string

	// Overrides are dotted keys applied last, e.g. "history.persist".
	Overrides map[string]interface{}

	// SkipEnv disables the environment source.
	SkipEnv bool
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load(Options{SkipEnv: true})
	if err != nil {
		panic("embedded defaults are invalid: " + err.Error())
	}
	return cfg
}

// Load merges all sources and validates the result.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, serrors.Wrap(err, serrors.ErrConfigLoad, "failed to load defaults")
	}

	if opts.SettingsPath != "" {
		if _, err := os.Stat(opts.SettingsPath); err == nil {
			if err := k.Load(file.Provider(opts.SettingsPath), toml.Parser()); err != nil {
				return nil, serrors.Wrapf(err, serrors.ErrConfigLoad, "failed to load settings from %s", opts.SettingsPath)
			}
		}
	}

	if !opts.SkipEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
		if err != nil {
			return nil, serrors.Wrap(err, serrors.ErrConfigLoad, "failed to load environment settings")
		}
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, serrors.Wrap(err, serrors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, serrors.Wrap(err, serrors.ErrConfigLoad, "failed to unmarshal settings")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps SAVELINK_HISTORY_MAX_ENTRIES to history.max_entries: the
// first underscore separates the section, the rest belong to the key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, key, found := strings.Cut(s, "_")
	if !found {
		return s
	}
	return section + "." + key
}

// Validate checks values that would otherwise fail much later.
func (c *Config) Validate() error {
	if c.History.MaxEntries < 1 {
		return serrors.Newf(serrors.ErrConfigLoad, "history.max_entries must be positive, got %d", c.History.MaxEntries)
	}
	if strings.TrimSpace(c.Games.SaveDirName) == "" || strings.TrimSpace(c.Games.BackupDirName) == "" {
		return serrors.New(serrors.ErrConfigLoad, "games.save_dir_name and games.backup_dir_name must be set")
	}
	if strings.EqualFold(c.Games.SaveDirName, c.Games.BackupDirName) {
		return serrors.New(serrors.ErrConfigLoad, "games.save_dir_name and games.backup_dir_name must differ")
	}
	if _, err := c.Mechanisms(); err != nil {
		return err
	}
	if c.Lock.Timeout < 0 {
		return serrors.New(serrors.ErrConfigLoad, "lock.timeout cannot be negative")
	}
	return nil
}

// Mechanisms parses links.mechanisms.
func (c *Config) Mechanisms() ([]types.Mechanism, error) {
	out := make([]types.Mechanism, 0, len(c.Links.Mechanisms))
	for _, name := range c.Links.Mechanisms {
		m, ok := types.ParseMechanism(strings.TrimSpace(strings.ToLower(name)))
		if !ok {
			return nil, serrors.Newf(serrors.ErrConfigLoad, "unknown link mechanism %q", name).
				WithDetail("allowed", []string{"symlink", "junction", "copy"})
		}
		out = append(out, m)
	}
	return out, nil
}
