package config

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/harunnryd/contribdesk/internal/pathutil"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

type Config struct {
	Server ServerConfig `koanf:"server" yaml:"server"`
	Store  StoreConfig  `koanf:"store" yaml:"store"`
	Export ExportConfig `koanf:"export" yaml:"export"`
}

type ServerConfig struct {
	LogLevel string `koanf:"log_level" yaml:"log_level"`
}

type StoreConfig struct {
	Backend      string `koanf:"backend" yaml:"backend"`
	DataDir      string `koanf:"data_dir" yaml:"data_dir"`
	Key          string `koanf:"key" yaml:"key"`
	LockTimeout  string `koanf:"lock_timeout" yaml:"lock_timeout"`
	LockRetry    string `koanf:"lock_retry" yaml:"lock_retry"`
	LockMaxRetry int    `koanf:"lock_max_retry" yaml:"lock_max_retry"`
}

type ExportConfig struct {
	OutputDir     string `koanf:"output_dir" yaml:"output_dir"`
	DefaultTarget string `koanf:"default_target" yaml:"default_target"`
}

// Store backends selectable with store.backend.
const (
	StoreBackendFile   = "file"
	StoreBackendSQLite = "sqlite"
)

const (
	DefaultServerLogLevel    = "info"
	DefaultStoreBackend      = StoreBackendFile
	DefaultStoreDataDir      = "~/.contribdesk/data"
	DefaultStoreKey          = "approvedContributions"
	DefaultStoreLockTimeout  = "10s"
	DefaultStoreLockRetry    = "50ms"
	DefaultStoreLockMaxRetry = 200
	DefaultExportOutputDir   = "."
	DefaultExportTarget      = "json"
	EnvPrefix                = "CONTRIBDESK_"
	DefaultConfigFileName    = "config.yaml"
)

func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	// Hardcoded Defaults
	defaults := map[string]interface{}{
		"server.log_level":      DefaultServerLogLevel,
		"store.backend":         DefaultStoreBackend,
		"store.data_dir":        DefaultStoreDataDir,
		"store.key":             DefaultStoreKey,
		"store.lock_timeout":    DefaultStoreLockTimeout,
		"store.lock_retry":      DefaultStoreLockRetry,
		"store.lock_max_retry":  DefaultStoreLockMaxRetry,
		"export.output_dir":     DefaultExportOutputDir,
		"export.default_target": DefaultExportTarget,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	// Config file loading
	configPath := ""
	if cmd != nil {
		if flag := cmd.Flags().Lookup("config"); flag != nil {
			configPath = strings.TrimSpace(flag.Value.String())
		}
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, err
		}
	} else if appDir, err := pathutil.AppDir(); err == nil {
		globalPath := filepath.Join(appDir, DefaultConfigFileName)
		if err := k.Load(file.Provider(globalPath), yaml.Parser()); err != nil {
			slog.Debug("Global config not found or invalid", "path", globalPath, "error", err)
		}
	}

	// Environment Variables: CONTRIBDESK_STORE__DATA_DIR -> store.data_dir
	k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.Replace(key, "__", ".", -1)
	}), nil)

	// CLI Flags
	if cmd != nil {
		k.Load(posflag.Provider(cmd.Flags(), ".", k), nil)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Store.Key) == "" {
		cfg.Store.Key = DefaultStoreKey
	}
	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = DefaultStoreBackend
	}

	if err := normalizePathFields(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func normalizePathFields(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	dataDir, err := pathutil.Expand(cfg.Store.DataDir)
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.Store.DataDir = dataDir
	}

	outputDir, err := pathutil.Expand(cfg.Export.OutputDir)
	if err != nil {
		return err
	}
	if outputDir != "" {
		cfg.Export.OutputDir = outputDir
	}

	return nil
}
