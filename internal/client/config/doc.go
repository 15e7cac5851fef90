// Package config loads runtime configuration for the fraudcheck CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected via -c or -config.
//  3. FRAUDCHECK_* environment variables (SERVER_ADDR, SESSION_DB,
//     DOWNLOAD_DIR, PING_TIMEOUT, LOG_LEVEL).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-s string   path of the local session database
//	-w string   directory downloaded attachments are written to
//	-i int      ping timeout (seconds)
//	-l string   log level (debug, info, warn, error)
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "session_db_path": "session.db",
//	  "ping_timeout": "3s"
//	}
package config
