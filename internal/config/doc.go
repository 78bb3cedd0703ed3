// Package config provides configuration structures and utilities for ytcomments.
// It defines the export settings, their defaults and validation, the optional
// YAML configuration file and the XDG directories used for data and config.
package config
