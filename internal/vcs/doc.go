// Package vcs initializes version control in freshly scaffolded projects by
// shelling out to the git binary.
package vcs
