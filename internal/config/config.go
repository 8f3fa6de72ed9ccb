// Package config provides hierarchical configuration management for gapcheck
// using koanf. Configuration is loaded with priority: environment variables >
// project config (.gapcheck/config.yml) > user config
// (~/.config/gapcheck/config.yml) > defaults. JSON config files are accepted
// alongside YAML at both locations.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	gaperrors "github.com/raveheart1/gapcheck/internal/errors"
)

// envPrefix namespaces gapcheck's environment variables.
const envPrefix = "GAPCHECK_"

// Configuration holds the tool-level defaults a check runs under. Per-case
// values from the manifest and per-invocation CLI flags both override these.
type Configuration struct {
	// DefaultEps is the threshold used when neither the manifest nor the
	// CLI provides one and the derived-threshold inputs are absent.
	DefaultEps float64 `koanf:"default_eps"`
	// DefaultTol is the comparison tolerance used when neither the manifest
	// nor the CLI provides one.
	DefaultTol float64 `koanf:"default_tol"`
	// PowerTol is the power iteration's relative convergence tolerance.
	PowerTol float64 `koanf:"power_tol"`
	// PowerMaxIters caps the power iteration, guaranteeing termination.
	PowerMaxIters int `koanf:"power_max_iters"`
	// SpectralAgreeTol bounds the allowed gap between the power estimate
	// and the exact SVD value before a disagreement warning is raised.
	SpectralAgreeTol float64 `koanf:"spectral_agree_tol"`
	// Verified enables certified outward-rounded evaluation by default.
	Verified bool `koanf:"verified"`
	// Color controls report coloring: "auto", "always", or "never".
	Color string `koanf:"color"`
}

// Default returns the built-in configuration values.
func Default() Configuration {
	return Configuration{
		DefaultEps:       1.0,
		DefaultTol:       1e-12,
		PowerTol:         1e-10,
		PowerMaxIters:    500,
		SpectralAgreeTol: 1e-6,
		Verified:         false,
		Color:            "auto",
	}
}

// Load loads configuration from user, project, and environment sources.
// Priority: environment variables > project config > user config > defaults.
// projectConfigPath overrides the project config location when non-empty.
func Load(projectConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	defaults := Default()
	loadDefaults(k, defaults)

	if err := loadFileIfPresent(k, userConfigPath()); err != nil {
		return nil, err
	}

	projectPath := projectConfigPath
	if projectPath == "" {
		projectPath = defaultProjectConfigPath()
	}
	if err := loadFileIfPresent(k, projectPath); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, gaperrors.WrapWithMessage(err, gaperrors.Manifest, "cannot load environment configuration")
	}

	cfg := defaults
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, gaperrors.WrapWithMessage(err, gaperrors.Manifest, "invalid configuration values")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDefaults seeds the koanf tree with built-in values.
func loadDefaults(k *koanf.Koanf, d Configuration) {
	_ = k.Set("default_eps", d.DefaultEps)
	_ = k.Set("default_tol", d.DefaultTol)
	_ = k.Set("power_tol", d.PowerTol)
	_ = k.Set("power_max_iters", d.PowerMaxIters)
	_ = k.Set("spectral_agree_tol", d.SpectralAgreeTol)
	_ = k.Set("verified", d.Verified)
	_ = k.Set("color", d.Color)
}

// loadFileIfPresent merges a config file into the tree when it exists.
// The parser is chosen by extension: .json uses JSON, everything else YAML.
func loadFileIfPresent(k *koanf.Koanf, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	parser := pickParser(path)
	if err := k.Load(file.Provider(path), parser); err != nil {
		return gaperrors.WrapWithMessage(err, gaperrors.Manifest,
			"cannot load config file "+path,
			"Check the file for syntax errors")
	}
	return nil
}

func pickParser(path string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.Parser()
	}
	return yaml.Parser()
}

// envKeyMapper turns GAPCHECK_POWER_MAX_ITERS into power_max_iters.
func envKeyMapper(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

// userConfigPath returns the XDG-compliant user config location.
func userConfigPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "gapcheck", "config.yml")
}

// defaultProjectConfigPath returns the project-local config location.
func defaultProjectConfigPath() string {
	return filepath.Join(".gapcheck", "config.yml")
}
