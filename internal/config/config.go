package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/wallflower/internal/kvstore"
)

// Config captures wallflower's settings.
type Config struct {
	APIURL        string
	AccessKey     string
	PerPage       int
	Orientation   string
	RandomQuery   string
	Storage       kvstore.Backend
	DataDir       string
	DownloadDir   string
	LogLevel      string
	LogFile       string
	HostThemePoll time.Duration
}

const (
	defaultConfigPath  = "~/.config/wallflower/config.toml"
	defaultAPIURL      = "https://api.unsplash.com"
	defaultPerPage     = 15
	maxPerPage         = 30
	defaultOrientation = "portrait"
	defaultQuery       = "wallpaper"
	defaultDataDir     = "~/.local/share/wallflower"
	defaultDownloadDir = "~/Pictures/wallflower"
	defaultLogLevel    = "info"
	logFileName        = "wallflower.log"

	// AccessKeyEnv overrides access_key when set.
	AccessKeyEnv = "UNSPLASH_ACCESS_KEY"
)

var validOrientations = map[string]struct{}{
	"landscape": {},
	"portrait":  {},
	"squarish":  {},
}

// Default returns the configuration used when no file exists.
func Default() Config {
	dataDir := mustExpand(defaultDataDir)
	return Config{
		APIURL:      defaultAPIURL,
		PerPage:     defaultPerPage,
		Orientation: defaultOrientation,
		RandomQuery: defaultQuery,
		Storage:     kvstore.BackendFile,
		DataDir:     dataDir,
		DownloadDir: mustExpand(defaultDownloadDir),
		LogLevel:    defaultLogLevel,
		LogFile:     filepath.Join(dataDir, logFileName),
	}
}

// Load locates and parses the config file, falling back to defaults when it
// is missing. The access key environment variable wins over the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg, err := loadFile(resolved)
	if err != nil {
		return Config{}, err
	}

	if key := strings.TrimSpace(os.Getenv(AccessKeyEnv)); key != "" {
		cfg.AccessKey = key
	}
	return cfg, nil
}

func loadFile(resolved string) (Config, error) {
	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL        string `toml:"api_url"`
		AccessKey     string `toml:"access_key"`
		PerPage       int    `toml:"per_page"`
		Orientation   string `toml:"orientation"`
		RandomQuery   string `toml:"random_query"`
		Storage       string `toml:"storage_backend"`
		DataDir       string `toml:"data_dir"`
		DownloadDir   string `toml:"download_dir"`
		LogLevel      string `toml:"log_level"`
		LogFile       string `toml:"log_file"`
		HostThemePoll int    `toml:"host_theme_poll"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Config{
		APIURL:      orDefault(raw.APIURL, defaultAPIURL),
		AccessKey:   strings.TrimSpace(raw.AccessKey),
		PerPage:     raw.PerPage,
		Orientation: strings.ToLower(orDefault(raw.Orientation, defaultOrientation)),
		RandomQuery: orDefault(raw.RandomQuery, defaultQuery),
		LogLevel:    strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel)),
	}

	if cfg.PerPage <= 0 {
		cfg.PerPage = defaultPerPage
	}
	if cfg.PerPage > maxPerPage {
		cfg.PerPage = maxPerPage
	}

	if _, ok := validOrientations[cfg.Orientation]; !ok {
		return Config{}, fmt.Errorf("parse config: orientation %q must be landscape, portrait or squarish", cfg.Orientation)
	}

	cfg.Storage, err = kvstore.ParseBackend(raw.Storage)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.HostThemePoll < 0 {
		return Config{}, fmt.Errorf("parse config: host_theme_poll must not be negative")
	}
	cfg.HostThemePoll = time.Duration(raw.HostThemePoll) * time.Second

	cfg.DataDir = mustExpand(orDefault(raw.DataDir, defaultDataDir))
	cfg.DownloadDir = mustExpand(orDefault(raw.DownloadDir, defaultDownloadDir))
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	} else {
		cfg.LogFile = filepath.Join(cfg.DataDir, logFileName)
	}

	return cfg, nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath expands a leading tilde and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
