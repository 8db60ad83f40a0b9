// Package config loads the tutorial's configuration.
//
// Configuration is read from tutorial.yaml (or .json/.toml) in the working
// directory, or from the file named by --config. Every key can be overridden
// from the environment with the TUTORIAL_ prefix, dots replaced by
// underscores (TUTORIAL_SOURCE_BASE_URL, TUTORIAL_LOG_LEVEL).
//
// # Configuration File Structure
//
//	source:
//	  base_url: https://jsonplaceholder.typicode.com
//	  timeout: 10s
//	  s3:
//	    bucket: tutorial-fixtures
//	    prefix: v1
//	    region: eu-north-1
//	log:
//	  level: info
//	  format: text
//	  sentry_dsn: ""
//	live:
//	  addr: localhost:8080
//	  codec: json
//	fixtures:
//	  addr: localhost:3001
//	  delay: 0s
//	routes:
//	  - {pattern: /, view: home}
//	  - {pattern: "*", view: not-found}
//
// The routes list is optional. When present it replaces the built-in table
// and is validated like it.
//
// # Usage
//
//	cfg, err := config.LoadFile(path)
//	if err != nil {
//	    errors.PrintError(os.Stderr, err)
//	    os.Exit(1)
//	}
package config
