// Package cli is responsible for parsing command-line arguments, validating
// user input and handling process-level concerns like exit codes. It
// translates host flags, and an optional TOML settings file, into the
// application's configuration. Module port flags are passed through
// untouched.
package cli
