// Package config handles configuration loading for the tabstash server.
//
// Configuration is loaded from a YAML file with ${VAR_NAME} environment
// variable expansion. Default locations (in order):
//
//  1. Path from TABSTASH_CONFIG environment variable
//  2. ./tabstash.yaml (current directory)
//  3. ~/.config/tabstash/tabstash.yaml
//
// Example:
//
//	server:
//	  http_addr: ":8080"
//	database:
//	  path: "~/.local/share/tabstash/tabstash.db"
//	auth:
//	  jwt_secret: "${TABSTASH_JWT_SECRET}"
//	cors:
//	  allowed_origins:
//	    - "chrome-extension://<extension-id>"
//	    - "http://localhost:63342"
//	logging:
//	  level: "info"
//	  format: "text"
//	metrics:
//	  enabled: true
//
// Load() validates that server.http_addr, database.path, and auth.jwt_secret
// are present and that the secret is at least 32 bytes. A missing secret is
// a startup error: generating a random one per process would invalidate all
// outstanding session tokens on every restart.
package config
