// Package config provides configuration management for the domain manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Foreman: API connection details (host, port, credentials, TLS, timeout)
//   - Log: Logging level and format
//
// Environment variables map onto nested keys with underscores, e.g.
// FOREMAN_HOST -> foreman.host and LOG_LEVEL -> log.level.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Foreman.Host)
package config
