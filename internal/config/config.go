// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/nyaliza/nyaliza-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete nyaliza configuration.
type Config struct {
	Version string `toml:"version" yaml:"version" json:"version"`

	// Responses configures the canned response list
	Responses ResponsesConfig `toml:"responses" yaml:"responses" json:"responses"`

	// Chat configures the input/response cycle
	Chat ChatConfig `toml:"chat" yaml:"chat" json:"chat"`

	// UI configures the terminal window
	UI UIConfig `toml:"ui" yaml:"ui" json:"ui"`

	// Logging configures the structured logger
	Logging LoggingConfig `toml:"logging" yaml:"logging" json:"logging"`
}

// ResponsesConfig describes the persisted response list.
type ResponsesConfig struct {
	// Path of the response file or database. Empty means ~/.nyaliza/cat_responses.txt
	// (or cat_responses.db for the sqlite backend).
	Path string `toml:"path" yaml:"path" json:"path"`
	// Backend is "file" (newline-delimited text) or "sqlite"
	Backend string `toml:"backend" yaml:"backend" json:"backend"`
	// DefaultResponse is used when the list is missing or empty
	DefaultResponse string `toml:"default_response" yaml:"default_response" json:"default_response"`
	// ErrorResponse is used when the list cannot be read
	ErrorResponse string `toml:"error_response" yaml:"error_response" json:"error_response"`
	// Watch reloads the list when the file is edited outside the app
	Watch bool `toml:"watch" yaml:"watch" json:"watch"`
	// ReloadIntervalMs is the minimum gap between two watcher reloads
	ReloadIntervalMs int `toml:"reload_interval_ms" yaml:"reload_interval_ms" json:"reload_interval_ms"`
}

// ChatConfig describes the chat session behaviour.
type ChatConfig struct {
	// ReplyDelayMs is the pause between the echoed input and the cat's reply.
	// Zero means the default (500ms).
	ReplyDelayMs int `toml:"reply_delay_ms" yaml:"reply_delay_ms" json:"reply_delay_ms"`
	// BusyPolicy decides what happens to plain input while a reply is pending:
	// "reject" refuses it, "queue" answers it after the pending reply.
	BusyPolicy string `toml:"busy_policy" yaml:"busy_policy" json:"busy_policy"`
	// CharLimit caps the input box length
	CharLimit int `toml:"char_limit" yaml:"char_limit" json:"char_limit"`
	// HistoryFile stores line-mode input history. Empty means ~/.nyaliza/chat_history
	HistoryFile string `toml:"history_file" yaml:"history_file" json:"history_file"`
}

// UIConfig describes the terminal window.
type UIConfig struct {
	// Title is shown in the header and the terminal title bar
	Title string `toml:"title" yaml:"title" json:"title"`
	// Background is the image rendered as the header backdrop
	Background string `toml:"background" yaml:"background" json:"background"`
	// ShowBackdrop toggles the backdrop banner
	ShowBackdrop bool `toml:"show_backdrop" yaml:"show_backdrop" json:"show_backdrop"`
	// BackdropWidth is the banner width in cells
	BackdropWidth int `toml:"backdrop_width" yaml:"backdrop_width" json:"backdrop_width"`
	// Theme is "auto", "dark" or "light"
	Theme string `toml:"theme" yaml:"theme" json:"theme"`
}

// LoggingConfig describes the structured logger.
type LoggingConfig struct {
	// Level is "debug", "info", "warn" or "error"
	Level string `toml:"level" yaml:"level" json:"level"`
	// File receives logs while the full-screen UI owns the terminal.
	// Empty means ~/.nyaliza/nyaliza.log
	File string `toml:"file" yaml:"file" json:"file"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

const (
	// DefaultResponse is shown while the cat knows nothing yet.
	DefaultResponse = "にゃ？（まだ何も知らないにゃ。/add で教えてにゃ）"

	// ErrorResponse is shown when the response list could not be read.
	ErrorResponse = "にゃーん…（エラーだにゃ）"

	// DefaultReplyDelay is the pause before the cat answers.
	DefaultReplyDelay = 500 * time.Millisecond

	BackendFile   = "file"
	BackendSQLite = "sqlite"

	BusyReject = "reject"
	BusyQueue  = "queue"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Responses: ResponsesConfig{
			Path:             "",
			Backend:          BackendFile,
			DefaultResponse:  DefaultResponse,
			ErrorResponse:    ErrorResponse,
			Watch:            true,
			ReloadIntervalMs: 250,
		},

		Chat: ChatConfig{
			ReplyDelayMs: int(DefaultReplyDelay / time.Millisecond),
			BusyPolicy:   BusyReject,
			CharLimit:    1024,
		},

		UI: UIConfig{
			Title:         "NyaLIZA",
			Background:    "test02.jpg",
			ShowBackdrop:  true,
			BackdropWidth: 48,
			Theme:         "auto",
		},

		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ReplyDelay returns the configured reply delay as a duration.
func (c ChatConfig) ReplyDelay() time.Duration {
	if c.ReplyDelayMs <= 0 {
		return DefaultReplyDelay
	}
	return time.Duration(c.ReplyDelayMs) * time.Millisecond
}

// ReloadInterval returns the minimum gap between watcher reloads.
func (c ResponsesConfig) ReloadInterval() time.Duration {
	return time.Duration(c.ReloadIntervalMs) * time.Millisecond
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the nyaliza configuration directory path.
// NYALIZA_HOME replaces the default ~/.nyaliza.
func ConfigDir() (string, error) {
	if dir := os.Getenv("NYALIZA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".nyaliza"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	return inConfigDir("config.toml")
}

// ConfigPathYAML returns the path to the YAML config file.
func ConfigPathYAML() (string, error) {
	return inConfigDir("config.yaml")
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	return inConfigDir("config.json")
}

func inConfigDir(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ResponsesPath resolves the response resource location.
func (c *Config) ResponsesPath() (string, error) {
	if c.Responses.Path != "" {
		return c.Responses.Path, nil
	}
	if c.Responses.Backend == BackendSQLite {
		return inConfigDir("cat_responses.db")
	}
	return inConfigDir("cat_responses.txt")
}

// HistoryPath resolves the line-mode history file.
func (c *Config) HistoryPath() (string, error) {
	if c.Chat.HistoryFile != "" {
		return c.Chat.HistoryFile, nil
	}
	return inConfigDir("chat_history")
}

// LogPath resolves the log file used by the full-screen UI.
func (c *Config) LogPath() (string, error) {
	if c.Logging.File != "" {
		return c.Logging.File, nil
	}
	return inConfigDir("nyaliza.log")
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration.
//
// A non-empty path is loaded directly and must exist. Otherwise TOML, YAML
// and JSON files in the config directory are tried in that order and the
// defaults are used when none exists. Environment overrides are applied
// last, then defaults are filled and the result validated.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFromPath(path)
	}

	candidates := []struct {
		pathFn func() (string, error)
		load   func(*Config, string) error
	}{
		{ConfigPathTOML, LoadTOML},
		{ConfigPathYAML, LoadYAML},
		{ConfigPathJSON, LoadJSON},
	}

	for _, c := range candidates {
		p, err := c.pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(p); statErr != nil {
			continue
		}
		cfg := Default()
		if err := c.load(cfg, p); err != nil {
			return nil, err
		}
		return finish(cfg)
	}

	return finish(Default())
}

// LoadFromPath loads configuration from a specific file. The format is
// chosen by extension; anything that is not .yaml/.yml/.json is read as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = LoadJSON(cfg, path)
	case ".yaml", ".yml":
		err = LoadYAML(cfg, path)
	default:
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, err
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file %s: %w", path, err)
	}
	return nil
}

// LoadYAML decodes a YAML file over cfg.
func LoadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read YAML file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration as TOML to path, or to the default TOML
// location when path is empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		p, err := ConfigPathTOML()
		if err != nil {
			return err
		}
		path = p
	}

	data, err := cfg.TOML()
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// TOML renders the configuration as a commented TOML document.
func (c *Config) TOML() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# nyaliza configuration file\n")
	buf.WriteString("# Generated by nyaliza - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors as ValidateErrors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	switch c.Responses.Backend {
	case BackendFile, BackendSQLite:
	default:
		errs = append(errs, ValidationError{
			Field:   "responses.backend",
			Message: fmt.Sprintf("invalid backend '%s', must be one of: file, sqlite", c.Responses.Backend),
		})
	}
	if strings.TrimSpace(c.Responses.DefaultResponse) == "" {
		errs = append(errs, ValidationError{Field: "responses.default_response", Message: "must not be blank"})
	}
	if strings.TrimSpace(c.Responses.ErrorResponse) == "" {
		errs = append(errs, ValidationError{Field: "responses.error_response", Message: "must not be blank"})
	}
	if c.Responses.ReloadIntervalMs < 0 {
		errs = append(errs, ValidationError{Field: "responses.reload_interval_ms", Message: "must not be negative"})
	}

	if c.Chat.ReplyDelayMs < 0 || c.Chat.ReplyDelayMs > 60_000 {
		errs = append(errs, ValidationError{
			Field:   "chat.reply_delay_ms",
			Message: fmt.Sprintf("%d out of range, must be 0-60000", c.Chat.ReplyDelayMs),
		})
	}
	switch c.Chat.BusyPolicy {
	case BusyReject, BusyQueue:
	default:
		errs = append(errs, ValidationError{
			Field:   "chat.busy_policy",
			Message: fmt.Sprintf("invalid policy '%s', must be one of: reject, queue", c.Chat.BusyPolicy),
		})
	}
	if c.Chat.CharLimit < 1 || c.Chat.CharLimit > 4096 {
		errs = append(errs, ValidationError{
			Field:   "chat.char_limit",
			Message: fmt.Sprintf("%d out of range, must be 1-4096", c.Chat.CharLimit),
		})
	}

	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}
	if c.UI.BackdropWidth < 8 || c.UI.BackdropWidth > 200 {
		errs = append(errs, ValidationError{
			Field:   "ui.backdrop_width",
			Message: fmt.Sprintf("%d out of range, must be 8-200", c.UI.BackdropWidth),
		})
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Logging.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values with defaults and normalizes enum casing.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Version == "" {
		c.Version = d.Version
	}

	c.Responses.Backend = strings.ToLower(strings.TrimSpace(c.Responses.Backend))
	if c.Responses.Backend == "" {
		c.Responses.Backend = d.Responses.Backend
	}
	if c.Responses.DefaultResponse == "" {
		c.Responses.DefaultResponse = d.Responses.DefaultResponse
	}
	if c.Responses.ErrorResponse == "" {
		c.Responses.ErrorResponse = d.Responses.ErrorResponse
	}

	if c.Chat.ReplyDelayMs == 0 {
		c.Chat.ReplyDelayMs = d.Chat.ReplyDelayMs
	}
	c.Chat.BusyPolicy = strings.ToLower(strings.TrimSpace(c.Chat.BusyPolicy))
	if c.Chat.BusyPolicy == "" {
		c.Chat.BusyPolicy = d.Chat.BusyPolicy
	}
	if c.Chat.CharLimit == 0 {
		c.Chat.CharLimit = d.Chat.CharLimit
	}

	if c.UI.Title == "" {
		c.UI.Title = d.UI.Title
	}
	if c.UI.BackdropWidth == 0 {
		c.UI.BackdropWidth = d.UI.BackdropWidth
	}
	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported environment variables:
//   - NYALIZA_RESPONSES: overrides responses.path
//   - NYALIZA_BACKEND: overrides responses.backend
//   - NYALIZA_DELAY_MS: overrides chat.reply_delay_ms
//   - NYALIZA_BUSY_POLICY: overrides chat.busy_policy
//   - NYALIZA_BACKGROUND: overrides ui.background
//   - NYALIZA_LOG_LEVEL: overrides logging.level
func (c *Config) ApplyEnvOverrides() {
	if path := os.Getenv("NYALIZA_RESPONSES"); path != "" {
		c.Responses.Path = path
	}
	if backend := os.Getenv("NYALIZA_BACKEND"); backend != "" {
		c.Responses.Backend = backend
	}
	if delay := os.Getenv("NYALIZA_DELAY_MS"); delay != "" {
		if ms, err := strconv.Atoi(delay); err == nil {
			c.Chat.ReplyDelayMs = ms
		}
	}
	if policy := os.Getenv("NYALIZA_BUSY_POLICY"); policy != "" {
		c.Chat.BusyPolicy = policy
	}
	if bg := os.Getenv("NYALIZA_BACKGROUND"); bg != "" {
		c.UI.Background = bg
	}
	if level := os.Getenv("NYALIZA_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// =============================================================================
// GLOBAL CONFIG
// =============================================================================

var (
	globalConfig   *Config
	globalConfigMu sync.RWMutex
)

// Global returns the process-wide configuration, or the defaults if none
// has been set. Thread-safe.
func Global() *Config {
	globalConfigMu.RLock()
	cfg := globalConfig
	globalConfigMu.RUnlock()
	if cfg == nil {
		return Default()
	}
	return cfg
}

// SetGlobal sets the process-wide configuration. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting clears the process-wide configuration.
func ResetGlobalForTesting() {
	SetGlobal(nil)
}
