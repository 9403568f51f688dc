// Package config loads the application configuration.
//
// Configuration comes from three layers, lowest priority first: built-in
// defaults, an optional TOML file, and SKILLTRACK_* environment variables.
// A missing config file is not an error; a file that exists but does not
// parse is.
package config
