package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "aidref/internal/platform/errors"
)

const FileName = "aidref.yaml"

type Config struct {
	DataPath         string
	DBPath           string
	Environment      string
	TrimEdgeArticles bool
}

type fileConfig struct {
	DBPath           string `yaml:"db_path"`
	Environment      string `yaml:"environment"`
	TrimEdgeArticles *bool  `yaml:"trim_edge_articles"`
}

func New(dataPath string) (Config, error) {
	if strings.TrimSpace(dataPath) == "" {
		return Config{}, fmt.Errorf("data path is required: %w", apperrors.ErrInvalidInput)
	}
	return Config{
		DataPath:    dataPath,
		DBPath:      filepath.Join(dataPath, ".aidref", "aidref.db"),
		Environment: "production",
	}, nil
}

// Load applies the optional aidref.yaml found in dataPath on top of the defaults.
func Load(dataPath string) (Config, error) {
	cfg, err := New(dataPath)
	if err != nil {
		return Config{}, err
	}
	b, err := os.ReadFile(filepath.Join(dataPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if fc.DBPath != "" {
		cfg.DBPath = fc.DBPath
		if !filepath.IsAbs(cfg.DBPath) {
			cfg.DBPath = filepath.Join(dataPath, cfg.DBPath)
		}
	}
	if fc.Environment != "" {
		cfg.Environment = fc.Environment
	}
	if fc.TrimEdgeArticles != nil {
		cfg.TrimEdgeArticles = *fc.TrimEdgeArticles
	}
	return cfg, nil
}
