// Package config loads the optional YAML configuration file of the prh
// command. A missing default file is not an error: every setting has a
// default, and command-line flags override file values after loading.
package config
