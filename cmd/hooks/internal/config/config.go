package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/hooks/cmd/hooks/internal/demo"
	"github.com/go-drift/hooks/pkg/core"
	engerrors "github.com/go-drift/hooks/pkg/errors"
	"github.com/go-drift/hooks/pkg/frame"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "hooks.yaml"

// Sink kinds.
const (
	SinkTerminal = "terminal"
	SinkWriter   = "writer"
	SinkFile     = "file"
	SinkJournal  = "journal"
)

// Config represents the optional hooks.yaml configuration.
type Config struct {
	App    AppConfig    `yaml:"app"`
	Engine EngineConfig `yaml:"engine"`
	Frame  FrameConfig  `yaml:"frame"`
	Sink   SinkConfig   `yaml:"sink"`
	Demo   DemoConfig   `yaml:"demo"`
}

// AppConfig names the application in logs and default file names.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// EngineConfig contains engine settings.
type EngineConfig struct {
	Coalescing string `yaml:"coalescing,omitempty"`
	Debug      bool   `yaml:"debug,omitempty"`
}

// FrameConfig contains frame loop settings.
type FrameConfig struct {
	Interval string `yaml:"interval,omitempty"`
}

// SinkConfig selects where commits go.
type SinkConfig struct {
	Kind string `yaml:"kind,omitempty"`
	Path string `yaml:"path,omitempty"`
}

// DemoConfig scripts the demo session.
type DemoConfig struct {
	Clicks []string `yaml:"clicks,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Dir        string
	Source     string
	AppName    string
	Coalescing core.Coalescing
	Debug      bool
	Interval   time.Duration
	SinkKind   string
	SinkPath   string
	Clicks     []string
}

// LoadOptional reads hooks.yaml from dir if present.
func LoadOptional(dir string) (*Config, string, error) {
	path := filepath.Join(dir, FileName)
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, "", nil
		}
		return nil, "", err
	}
	return cfg, path, nil
}

// Load reads the configuration file at path, which must exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, configError(fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err))
	}

	return &cfg, nil
}

// Resolve loads hooks.yaml from dir (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, source, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return resolve(dir, source, cfg)
}

// ResolveFile loads the configuration file at path and resolves defaults
// relative to its directory.
func ResolveFile(path string) (*Resolved, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return resolve(filepath.Dir(path), path, cfg)
}

func resolve(dir, source string, cfg *Config) (*Resolved, error) {
	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(dir)
	}

	coalescing, err := core.ParseCoalescing(cfg.Engine.Coalescing)
	if err != nil {
		return nil, configError(err)
	}

	interval := frame.DefaultInterval
	if s := strings.TrimSpace(cfg.Frame.Interval); s != "" {
		interval, err = time.ParseDuration(s)
		if err != nil {
			return nil, configError(fmt.Errorf("frame.interval: %w", err))
		}
		if interval <= 0 {
			return nil, configError(fmt.Errorf("frame.interval must be positive, got %s", s))
		}
	}

	kind := strings.ToLower(strings.TrimSpace(cfg.Sink.Kind))
	if kind == "" {
		kind = SinkTerminal
	}
	path := strings.TrimSpace(cfg.Sink.Path)
	switch kind {
	case SinkTerminal, SinkWriter:
	case SinkFile:
		if path == "" {
			return nil, configError(fmt.Errorf("sink.path is required for the %s sink", kind))
		}
	case SinkJournal:
		if path == "" {
			path = appName + ".hooks.db"
		}
	default:
		return nil, configError(fmt.Errorf("unknown sink kind %q", cfg.Sink.Kind))
	}
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	for _, click := range cfg.Demo.Clicks {
		if _, err := demo.ButtonID(click); err != nil {
			return nil, configError(fmt.Errorf("demo.clicks: %w", err))
		}
	}

	return &Resolved{
		Dir:        dir,
		Source:     source,
		AppName:    appName,
		Coalescing: coalescing,
		Debug:      cfg.Engine.Debug,
		Interval:   interval,
		SinkKind:   kind,
		SinkPath:   path,
		Clicks:     cfg.Demo.Clicks,
	}, nil
}

func configError(err error) error {
	return &engerrors.EngineError{
		Op:   "config.Resolve",
		Kind: engerrors.KindConfig,
		Err:  err,
	}
}

// defaultAppName is the last element of the module path in dir/go.mod,
// without a major version suffix, or the directory name.
func defaultAppName(dir string) string {
	base := "hooks"
	if abs, err := filepath.Abs(dir); err == nil {
		base = filepath.Base(abs)
	}
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return base
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return base
	}
	if prefix, _, ok := module.SplitPathVersion(path); ok {
		path = prefix
	}
	parts := strings.Split(path, "/")
	if name := parts[len(parts)-1]; name != "" {
		return name
	}
	return base
}
