package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides: LDAP_FIXTURE__ADMIN_PASSWORD -> admin-password.
const EnvPrefix = "LDAP_FIXTURE__"

// CharmConfigFile is the option schema shipped in the charm root.
const CharmConfigFile = "config.yaml"

// Layers are the inputs merged by Load, lowest priority first.
// Empty fields are skipped.
type Layers struct {
	// CharmDir holds config.yaml whose option defaults are applied.
	CharmDir string
	// Live are values reported by config-get.
	Live map[string]any
	// File is an optional YAML file of overrides.
	File string
	// Env enables LDAP_FIXTURE__ overrides.
	Env bool
	// Overrides win over everything else, for example explicit CLI flags.
	Overrides map[string]any
}

// Load merges layers over Defaults and validates the result.
func Load(layers Layers) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if layers.CharmDir != "" {
		defaults, err := CharmDefaults(filepath.Join(layers.CharmDir, CharmConfigFile))
		if err != nil {
			return nil, err
		}
		if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load charm defaults: %w", err)
		}
	}

	if len(layers.Live) > 0 {
		if err := k.Load(confmap.Provider(layers.Live, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load charm config: %w", err)
		}
	}

	if layers.File != "" {
		if _, err := os.Stat(layers.File); err != nil {
			return nil, fmt.Errorf("config file not found: %s", layers.File)
		}
		if err := k.Load(file.Provider(layers.File), koanfyaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if layers.Env {
		envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
			key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
			return strings.ReplaceAll(key, "_", "-")
		})
		if err := k.Load(envProvider, nil); err != nil {
			return nil, fmt.Errorf("failed to load environment variables: %w", err)
		}
	}

	if len(layers.Overrides) > 0 {
		if err := k.Load(confmap.Provider(layers.Overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// charmOptions mirrors the options section of a charm's config.yaml.
type charmOptions struct {
	Options map[string]struct {
		Type        string `yaml:"type"`
		Default     any    `yaml:"default"`
		Description string `yaml:"description"`
	} `yaml:"options"`
}

// CharmDefaults returns the option defaults declared in a charm config.yaml.
// A missing file yields no defaults.
func CharmDefaults(path string) (map[string]any, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var opts charmOptions
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	defaults := make(map[string]any, len(opts.Options))
	for name, opt := range opts.Options {
		if opt.Default == nil {
			continue
		}
		defaults[name] = opt.Default
	}
	return defaults, nil
}

// Source yields the configuration current at call time.
type Source interface {
	Load(ctx context.Context) (*Config, error)
}

// LiveGetter returns the unit's live configuration values (config-get).
type LiveGetter interface {
	ConfigGet(ctx context.Context) (map[string]any, error)
}

// HookSource loads configuration inside a hook. Nothing is cached: every
// Load calls config-get again.
type HookSource struct {
	Getter   LiveGetter
	CharmDir string
	// Overrides carry settings that are not charm options, such as the
	// workload name. Environment overrides are never applied in a hook.
	Overrides map[string]any
}

// Load implements Source.
func (s *HookSource) Load(ctx context.Context) (*Config, error) {
	live, err := s.Getter.ConfigGet(ctx)
	if err != nil {
		return nil, err
	}
	return Load(Layers{CharmDir: s.CharmDir, Live: live, Overrides: s.Overrides})
}

// StaticSource loads configuration outside a hook, from an optional file
// plus explicit overrides (for example CLI flags).
type StaticSource struct {
	File      string
	Overrides map[string]any
}

// Load implements Source.
func (s *StaticSource) Load(_ context.Context) (*Config, error) {
	return Load(Layers{File: s.File, Env: true, Overrides: s.Overrides})
}
