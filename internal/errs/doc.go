// Package errs defines the typed failures shared by the template store and
// the project materializer. Each type matches its sentinel with errors.Is so
// callers can branch on the category without caring about the carried
// context, and unwraps to the underlying cause.
package errs
