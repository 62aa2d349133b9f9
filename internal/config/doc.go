// Package config loads runtime configuration for the credvault CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional YAML file: the path given with --config, otherwise
//     credvault.yaml in the user config directory or the working directory.
//  3. Environment variables prefixed with CREDVAULT_, with '.' replaced by
//     '_' (for example CREDVAULT_STORE_BACKEND=sqlite).
//  4. Command-line flags bound by the caller, which override everything.
//
// # YAML schema
//
//	data_dir: /home/alice/.config/credvault
//	language: en
//	store:
//	  backend: json        # json | sqlite
//	  file: ""             # relative to data_dir; empty picks credentials.json / credentials.db
//	auth:
//	  max_attempts: 3
//	hash:
//	  algorithm: sha256    # sha256 | argon2id
//	crack:
//	  max_length: 4
//	  alphabet: abc...XYZ0123456789
//	  progress_every: 1000
//	log:
//	  level: info
//	  format: text         # text | json
//	  output: file         # stderr | file
//	  file: credvault.log
//	  max_size_mb: 10
//	  max_backups: 3
//	  max_age_days: 28
//
// A missing config file is not an error; a malformed one is.
package config
