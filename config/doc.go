// Package config loads service settings from an optional YAML file, environment
// variables prefixed with ANTIPATTERNS_ and built-in defaults, in that order of
// precedence (env wins over file, file wins over defaults).
package config
