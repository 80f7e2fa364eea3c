// Package config provides configuration loading and validation for stacks.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (STACKS_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// Scalar config keys map to environment variables with STACKS_ prefix:
//   - server.port → STACKS_SERVER_PORT
//   - log.level → STACKS_LOG_LEVEL
//
// Mounts are a list and can only be set from files; the --prefix, --root,
// --listing and --charset flags override the first mount.
//
// # Configuration Structure
//
// The Config struct contains:
//   - Server: host, port and HTTP timeouts
//   - Mounts: URL prefix, root directory, index files, listing switch,
//     charset and listing options for each served directory
//   - CORS: cross-origin resource sharing settings
//   - Log: level and format (text or json)
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Port must be 1-65535
//   - Mount prefixes must start with / and be unique
//   - Charsets must be known encoding names (golang.org/x/text/encoding/htmlindex)
//   - Log level must be debug, info, warn, or error
package config
