// Package config resolves Bollard settings from, in rising precedence:
// built-in defaults, ~/.bollard/config.yaml, BOLLARD_* environment
// variables, and CLI flags. Every resolved value records where it came
// from so `bollard config` can explain the effective setup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type ValueSource string

const (
	SourceUnknown ValueSource = "unknown"
	SourceConfig  ValueSource = "config"
	SourceEnv     ValueSource = "env"
	SourceCLI     ValueSource = "cli"
	SourceDefault ValueSource = "default"
)

type ResolvedValue struct {
	Value  string      `json:"value"`
	Source ValueSource `json:"source"`
	From   string      `json:"from,omitempty"`
}

type ResolveOptions struct {
	ConfigPath  string
	CLIDBPath   string
	CLIModelDir string
}

type ResolvedConfig struct {
	ConfigPath string `json:"config_path"`

	DBPath      ResolvedValue `json:"db_path"`
	ModelDir    ResolvedValue `json:"model_dir"`
	MaxFileSize ResolvedValue `json:"max_file_size"`
}

type fileConfig struct {
	DBPath      string `yaml:"db_path"`
	ModelDir    string `yaml:"model_dir"`
	MaxFileSize string `yaml:"max_file_size"`
}

func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".bollard", "config.yaml")
}

func ResolveConfig(opts ResolveOptions) (ResolvedConfig, error) {
	path := strings.TrimSpace(opts.ConfigPath)
	if path == "" {
		path = DefaultConfigPath()
	}

	out := ResolvedConfig{ConfigPath: path}

	cfg, err := loadConfig(path)
	if err != nil {
		return out, err
	}
	if cfg != nil {
		apply(&out.DBPath, cfg.DBPath, SourceConfig, path)
		apply(&out.ModelDir, cfg.ModelDir, SourceConfig, path)
		apply(&out.MaxFileSize, cfg.MaxFileSize, SourceConfig, path)
	}

	applyEnv(&out.DBPath, "BOLLARD_DB")
	applyEnv(&out.DBPath, "BOLLARD_DB_PATH")
	applyEnv(&out.ModelDir, "BOLLARD_MODEL_DIR")
	applyEnv(&out.MaxFileSize, "BOLLARD_MAX_FILE_SIZE")

	apply(&out.DBPath, opts.CLIDBPath, SourceCLI, "--db")
	apply(&out.ModelDir, opts.CLIModelDir, SourceCLI, "--models")

	if out.DBPath.Value != "" {
		out.DBPath.Value = expandUserPath(out.DBPath.Value)
	}
	if out.ModelDir.Value != "" {
		out.ModelDir.Value = expandUserPath(out.ModelDir.Value)
	}

	return out, nil
}

// MaxFileSizeBytes parses the configured upload ceiling. Zero means
// "use the built-in default".
func (r ResolvedConfig) MaxFileSizeBytes() (int64, error) {
	v := strings.TrimSpace(r.MaxFileSize.Value)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid max_file_size %q (want bytes)", v)
	}
	return n, nil
}

func apply(dst *ResolvedValue, raw string, source ValueSource, from string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return
	}
	*dst = ResolvedValue{Value: v, Source: source, From: from}
}

func applyEnv(dst *ResolvedValue, envKey string) {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		*dst = ResolvedValue{Value: v, Source: SourceEnv, From: envKey}
	}
}

func loadConfig(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

func expandUserPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
