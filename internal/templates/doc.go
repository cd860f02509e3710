// Package templates defines the architecture Template model, its path-safety
// validator, and the JSON codec used for the embedded defaults and the
// user's consolidated override file. Documents are checked against an
// embedded JSON Schema before decoding so that shape detection is strict:
// an object missing one of the four template fields is not a Template.
package templates
