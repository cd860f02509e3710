// Package scaffold materializes a resolved architecture template on disk. It
// powers the "forge new" command: create the destination, the template's
// directories and seed files, an optional README.md, and optionally a git
// repository.
//
// Scaffolding is not atomic. A failure part way through leaves whatever was
// already written in place.
package scaffold
