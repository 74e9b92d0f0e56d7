// Package cli wires together the Cobra commands for the codeclimate2github
// and ghbot binaries.
//
// Each command binds its flags into a viper instance, resolves settings
// through internal/config, builds the GitHub adapter and the application
// service, and returns a deterministic exit code for CI gating.
package cli
