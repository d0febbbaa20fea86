// Package config loads runtime configuration for the SkillShare CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, after loading an optional .env file:
//     SKILLSHARE_SERVER_URL, SKILLSHARE_DB, SKILLSHARE_TIMEOUT,
//     SKILLSHARE_LOG_LEVEL, COHERE_API_KEY, COHERE_URL.
//  3. Optional JSON or YAML file selected with -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST API
//	-d string   local session database
//	-t int      request timeout (seconds)
//	-r int      retry attempts
//	-l string   log level
//
// # File schema
//
// Durations accept strings like "3s" or integer nanoseconds:
//
//	server_url: http://localhost:8080/api
//	request_timeout: 10s
//	database_path: skillshare.db
//	retry_attempts: 3
//	retry_base_delay: 500ms
//	cohere_api_key: ...
package config
