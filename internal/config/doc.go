// Package config loads the demo binary's TOML configuration and watches
// the config file for live reload. A missing file yields the defaults;
// a malformed file is an error.
package config
