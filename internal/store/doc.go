// Package store resolves architecture templates from three layers: the
// embedded built-ins, legacy per-key JSON files found in the user template
// directory (migrated into the consolidated file on first sight), and the
// consolidated local_templates.json override file. Later layers replace
// earlier ones key by key.
//
// Nothing is cached between calls. Every Resolve re-reads the disk and every
// mutation performs its own read-modify-write of the consolidated file.
package store
