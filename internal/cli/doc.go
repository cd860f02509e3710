// Package cli defines the Cobra command tree for the forge CLI. Each file in
// this package registers one top-level command (new, list, template, etc.)
// with the root command. Command implementations delegate to internal
// packages for template resolution and scaffolding and only handle flag
// parsing, I/O formatting, and user interaction.
package cli
