// Package config loads runtime configuration for the coupon admin console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml/.yml are read as YAML, anything else as JSON (comments and
//     trailing commas allowed).
//  3. The COUPONADMIN_API_URL environment variable.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   backend base URL
//	-t int      request timeout (seconds)
//	-d string   session database path
//	-i int      session check interval (seconds)
//	-l string   log level
//
// # File schema
//
//	{
//	  // backend
//	  "server_url": "https://coupons.example.com/api",
//	  "request_timeout": "10s",
//	  "database_path": "/var/lib/couponadmin/session.db",
//	  "session_check_interval": "30s",
//	  "log_level": "debug",
//	}
package config
