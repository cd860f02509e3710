// Package userdata resolves the per-user forge directories (config root,
// template store) following platform conventions, creates them on
// "forge init", and reports their health for "forge doctor".
package userdata
