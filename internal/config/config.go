// Package config resolves runtime settings from defaults, an optional YAML
// file, a .env file and the process environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	AuthLocal    = "local"
	AuthFirebase = "firebase"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type RuntimeConfig struct {
	SplashDuration          time.Duration
	SchedulerBuffer         int
	SessionBuffer           int
	DesktopNotifications    bool
	DatabasePath            string
	AuthBackend             string
	FirebaseCredentialsFile string
	FirebaseTokenFile       string
	RecentLoginWindow       time.Duration
	LocalUserName           string
	LocalUserEmail          string
	LogFile                 string
	SeedDemoData            bool
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		SplashDuration:    2500 * time.Millisecond,
		SchedulerBuffer:   64,
		SessionBuffer:     16,
		AuthBackend:       AuthLocal,
		RecentLoginWindow: 5 * time.Minute,
		LocalUserName:     "Home Owner",
		LocalUserEmail:    "owner@flowo.local",
		LogFile:           "flowo.log",
	}
}

// DefaultConfigPath is ~/.flowo/config.yaml, or empty when the home
// directory cannot be resolved.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flowo", "config.yaml")
}

// Load layers the YAML file at path (skipped when empty or missing), a .env
// file in the working directory and FLOWO_* variables over the defaults.
func Load(path string) (RuntimeConfig, error) {
	cfg, err := LoadFile(path, DefaultRuntimeConfig())
	if err != nil {
		return RuntimeConfig{}, err
	}
	if err := LoadDotEnv(".env"); err != nil {
		return RuntimeConfig{}, err
	}
	cfg = RuntimeConfigFromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, nil
}

// LoadDotEnv sets variables from the given .env files without overriding
// ones already present. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

type fileConfig struct {
	SplashDuration       *string `yaml:"splash_duration"`
	SchedulerBuffer      *int    `yaml:"scheduler_buffer"`
	DesktopNotifications *bool   `yaml:"desktop_notifications"`
	DatabasePath         *string `yaml:"database_path"`
	LogFile              *string `yaml:"log_file"`
	SeedDemoData         *bool   `yaml:"seed_demo_data"`
	Auth                 struct {
		Backend           *string `yaml:"backend"`
		RecentLoginWindow *string `yaml:"recent_login_window"`
		LocalName         *string `yaml:"local_name"`
		LocalEmail        *string `yaml:"local_email"`
		Firebase          struct {
			CredentialsFile *string `yaml:"credentials_file"`
			TokenFile       *string `yaml:"token_file"`
		} `yaml:"firebase"`
	} `yaml:"auth"`
}

func LoadFile(path string, base RuntimeConfig) (RuntimeConfig, error) {
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return base, fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := base
	if fc.SplashDuration != nil {
		d, err := time.ParseDuration(*fc.SplashDuration)
		if err != nil {
			return base, fmt.Errorf("%w: splash_duration: %v", ErrInvalidConfig, err)
		}
		cfg.SplashDuration = d
	}
	if fc.SchedulerBuffer != nil && *fc.SchedulerBuffer > 0 {
		cfg.SchedulerBuffer = *fc.SchedulerBuffer
	}
	setIf(&cfg.DesktopNotifications, fc.DesktopNotifications)
	setIf(&cfg.DatabasePath, fc.DatabasePath)
	setIf(&cfg.LogFile, fc.LogFile)
	setIf(&cfg.SeedDemoData, fc.SeedDemoData)
	setIf(&cfg.AuthBackend, fc.Auth.Backend)
	setIf(&cfg.LocalUserName, fc.Auth.LocalName)
	setIf(&cfg.LocalUserEmail, fc.Auth.LocalEmail)
	setIf(&cfg.FirebaseCredentialsFile, fc.Auth.Firebase.CredentialsFile)
	setIf(&cfg.FirebaseTokenFile, fc.Auth.Firebase.TokenFile)
	if fc.Auth.RecentLoginWindow != nil {
		d, err := time.ParseDuration(*fc.Auth.RecentLoginWindow)
		if err != nil {
			return base, fmt.Errorf("%w: recent_login_window: %v", ErrInvalidConfig, err)
		}
		cfg.RecentLoginWindow = d
	}
	return cfg, nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvDuration("FLOWO_SPLASH_DURATION"); ok && v >= 0 {
		cfg.SplashDuration = v
	}
	if v, ok := getEnvInt("FLOWO_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvBool("FLOWO_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvString("FLOWO_DB_PATH"); ok {
		cfg.DatabasePath = v
	}
	if v, ok := getEnvString("FLOWO_AUTH_BACKEND"); ok {
		cfg.AuthBackend = strings.ToLower(v)
	}
	if v, ok := getEnvString("FLOWO_FIREBASE_CREDENTIALS"); ok {
		cfg.FirebaseCredentialsFile = v
	}
	if v, ok := getEnvString("FLOWO_FIREBASE_TOKEN_FILE"); ok {
		cfg.FirebaseTokenFile = v
	}
	if v, ok := getEnvDuration("FLOWO_RECENT_LOGIN_WINDOW"); ok && v >= 0 {
		cfg.RecentLoginWindow = v
	}
	if v, ok := getEnvString("FLOWO_LOCAL_NAME"); ok {
		cfg.LocalUserName = v
	}
	if v, ok := getEnvString("FLOWO_LOCAL_EMAIL"); ok {
		cfg.LocalUserEmail = v
	}
	if v, ok := getEnvString("FLOWO_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvBool("FLOWO_SEED_DEMO"); ok {
		cfg.SeedDemoData = v
	}
	return cfg
}

func (c RuntimeConfig) Validate() error {
	switch c.AuthBackend {
	case AuthLocal:
	case AuthFirebase:
		if c.FirebaseTokenFile == "" {
			return fmt.Errorf("%w: firebase auth needs a token file", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown auth backend %q", ErrInvalidConfig, c.AuthBackend)
	}
	if c.SchedulerBuffer <= 0 || c.SessionBuffer <= 0 {
		return fmt.Errorf("%w: buffers must be positive", ErrInvalidConfig)
	}
	return nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvDuration(name string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
