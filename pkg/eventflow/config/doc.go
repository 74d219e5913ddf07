/*
Package config resolves the options of a generation run.

# Sources

Options are layered, later sources winning:

 1. Defaults()
 2. a YAML, JSON, or TOML file, read with FromFile and applied by OptionsFromConfig
 3. EVENTFLOW_* environment variables, applied by FromEnv

Load performs all three steps and validates the result:

	opts, err := config.Load("eventflow.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	paths := opts.Paths()

# File Format

Keys may sit at the top level or under an "eventflow" section, so the
settings can share a file with other tools:

	eventflow:
	  outputDir: docs
	  typeFile: listen-types.go
	  packageDir: internal/events
	  delimiter: "."

The TOML equivalent uses an [eventflow] table.

# Lookup

Config wraps the decoded document. Its accessors return the supplied
default when a key is missing or has the wrong type, so a partial file
only overrides what it names.
*/
package config
