// Package config provides configuration management for the regional API server.
//
// Configuration is loaded from environment variables using the env package,
// after an optional .env file found in the working directory or one of its
// parents. All configuration values have sensible defaults for development use.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("HTTP server will listen on %s\n", cfg.GetHTTPAddr())
package config
