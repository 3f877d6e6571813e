// Package config loads the trackup TOML configuration, applying repository
// defaults for anything the operator leaves unset.
package config
