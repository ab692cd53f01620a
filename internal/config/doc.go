// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for nyaliza.
//
// TOML is the primary format; YAML and JSON are accepted as fallbacks.
// Missing values are filled from built-in defaults, environment variables
// override file values, and the result is validated before use.
//
// # Key Types
//
//   - Config: Main configuration structure
//   - ResponsesConfig: Where the canned responses live and how they reload
//   - ChatConfig: Reply delay and busy policy of the chat session
//   - UIConfig: Window title, background image and theme
//   - LoggingConfig: Log level and log file
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (NYALIZA_*)
//   - An explicit --config path
//   - ~/.nyaliza/config.toml
//   - ~/.nyaliza/config.yaml
//   - ~/.nyaliza/config.json
//   - Built-in defaults
//
// The base directory can be moved with NYALIZA_HOME.
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	delay := cfg.Chat.ReplyDelay()
package config
