// Package config manages user-level settings stored in config.yaml inside the
// forge config directory. Every key can be overridden with a FORGE_<KEY>
// environment variable.
package config
